package constants

// Префиксы обозначений проектной схемы именования
const (
	DesignationPrefix = "ZVD"
	ProductLite       = "LITE"
	ProductTurbo      = "TURBO"
)

// Смещение длины теплообменника относительно L1 (мм)
const HeatExchangerLengthOffset = 300

// Классы файлов КОМПАС-3D и SolidWorks
var (
	ExtKompasAssembly     = []string{".a3d"}
	ExtKompasPart         = []string{".m3d"}
	ExtKompasDrawing      = []string{".cdw"}
	ExtSolidWorksAssembly = []string{".sldasm"}
	ExtSolidWorksPart     = []string{".sldprt"}
	ExtSolidWorksDrawing  = []string{".slddrw"}
	ExtDXF                = []string{".dxf"}
	ExtArchive            = []string{".rar", ".zip", ".7z"}
)

// GUID-фрагменты библиотек типов КОМПАС в кэше COM-оберток
var KompasTypeLibGUIDs = []string{"0422828C", "2CAF168C"}
