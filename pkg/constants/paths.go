package constants

// Фиксированные относительные пути (рядом с бинарником, как у двойного клика)
const (
	PathManifest   = "requirements.txt"
	PathEntryPoint = "gui_kompas_manager.py"
	PathConfig     = "config.yaml"
	PathTemplates  = "templates"
	PathTemplateDB = "templates.db"
)

// Служебные папки внутри проекта
const (
	DirDXF = "DXF"
	DirBMP = "BMP"
	DirPDF = "PDF"
)

// Исполняемые файлы окружения по умолчанию
const (
	DefaultRuntime = "python"
	DefaultPip     = "pip"
	ProbePackage   = "customtkinter"
)
