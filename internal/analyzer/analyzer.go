// Package analyzer сканирует папку с проектами КОМПАС-3D и SolidWorks:
// собирает структуру и параметры БЕЗ открытия файлов — только анализ
// имен и расширений.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// Типы проектов
const (
	TypeKompas     = "KOMPAS"
	TypeSolidWorks = "SolidWorks"
	TypeArchive    = "Archive"
	TypeDXFOnly    = "DXF_Only"
	TypeUnknown    = "unknown"
)

// Уровни уверенности извлечения параметров
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Params — извлеченные из имени параметры изделия
type Params struct {
	H           int    `json:"H"`
	B1          int    `json:"B1"`
	L1          int    `json:"L1"`
	ProductType string `json:"product_type"`
	Confidence  string `json:"confidence"`
}

// FileCounts — количество файлов по классам в папке проекта
type FileCounts struct {
	KompasAssemblies     int `json:"kompas_assemblies"`
	KompasParts          int `json:"kompas_parts"`
	KompasDrawings       int `json:"kompas_drawings"`
	SolidWorksAssemblies int `json:"solidworks_assemblies"`
	SolidWorksParts      int `json:"solidworks_parts"`
	SolidWorksDrawings   int `json:"solidworks_drawings"`
	DXFFiles             int `json:"dxf_files"`
	Archives             int `json:"archives"`
	TotalFiles           int `json:"total_files"`
}

// ProjectInfo — результат анализа одной папки проекта
type ProjectInfo struct {
	FolderName   string  `json:"folder_name"`
	RelativePath string  `json:"relative_path"`
	ProjectType  string  `json:"project_type"`
	Counts       FileCounts
	Params       *Params `json:"params,omitempty"`
}

// HasParams сообщает, нашлись ли параметры H, B1, L1
func (p *ProjectInfo) HasParams() bool { return p.Params != nil }

// Statistics — агрегированная статистика по всем проектам
type Statistics struct {
	TotalFolders       int            `json:"total_folders"`
	TotalFiles         int            `json:"total_files"`
	Counts             FileCounts     `json:"counts"`
	ProjectsWithParams int            `json:"projects_with_params"`
	HValues            map[int]int    `json:"h_values"`
	B1Values           map[int]int    `json:"b1_values"`
	L1Values           map[int]int    `json:"l1_values"`
	Configurations     map[string]int `json:"configurations"`
	ProjectTypes       map[string]int `json:"project_types"`
}

// Analyzer — универсальный анализатор проектов
type Analyzer struct {
	root   string
	logger *zap.Logger

	Projects []ProjectInfo
	Stats    Statistics
}

// New создает анализатор для папки с проектами
func New(root string, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		root:   root,
		logger: logger,
		Stats: Statistics{
			HValues:        make(map[int]int),
			B1Values:       make(map[int]int),
			L1Values:       make(map[int]int),
			Configurations: make(map[string]int),
			ProjectTypes:   make(map[string]int),
		},
	}
}

// Паттерны полного формата: ZVD.LITE.H.B1.L1 и варианты
var fullPatterns = []struct {
	re      *regexp.Regexp
	product string
}{
	{regexp.MustCompile(`(?i)ZVD\.LITE\.(\d+)\.(\d+)\.(\d+)`), constants.ProductLite},
	{regexp.MustCompile(`(?i)ZVD\.TURBO\.(\d+)\.(\d+)\.(\d+)`), constants.ProductTurbo},
	{regexp.MustCompile(`(?i)LITE\.(\d+)\.(\d+)\.(\d+)`), constants.ProductLite},
	{regexp.MustCompile(`(?i)TURBO\.(\d+)\.(\d+)\.(\d+)`), constants.ProductTurbo},
}

// Менее надежный паттерн: три числа через точку
var numbersPattern = regexp.MustCompile(`(\d{2,3})\.(\d{2,3})\.(\d{3,4})`)

// ExtractParams извлекает H, B1, L1 из имени файла или папки.
// Полные паттерны дают high, голая тройка чисел принимается только
// при правдоподобных значениях (50–500 для H/B1, 200–8000 для L1).
func ExtractParams(name string) *Params {
	for _, p := range fullPatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		h, err1 := strconv.Atoi(m[1])
		b1, err2 := strconv.Atoi(m[2])
		l1, err3 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		return &Params{H: h, B1: b1, L1: l1, ProductType: p.product, Confidence: ConfidenceHigh}
	}

	m := numbersPattern.FindStringSubmatch(name)
	if m != nil {
		h, _ := strconv.Atoi(m[1])
		b1, _ := strconv.Atoi(m[2])
		l1, _ := strconv.Atoi(m[3])
		if h >= 50 && h <= 500 && b1 >= 50 && b1 <= 500 && l1 >= 200 && l1 <= 8000 {
			return &Params{H: h, B1: b1, L1: l1, ProductType: "unknown", Confidence: ConfidenceMedium}
		}
	}

	return nil
}

// classifyFile относит файл к классу по расширению
func classifyFile(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case hasExt(constants.ExtKompasAssembly, ext):
		return "kompas_assembly"
	case hasExt(constants.ExtKompasPart, ext):
		return "kompas_part"
	case hasExt(constants.ExtKompasDrawing, ext):
		return "kompas_drawing"
	case hasExt(constants.ExtSolidWorksAssembly, ext):
		return "solidworks_assembly"
	case hasExt(constants.ExtSolidWorksPart, ext):
		return "solidworks_part"
	case hasExt(constants.ExtSolidWorksDrawing, ext):
		return "solidworks_drawing"
	case hasExt(constants.ExtDXF, ext):
		return "dxf"
	case hasExt(constants.ExtArchive, ext):
		return "archive"
	default:
		return "other"
	}
}

func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// AnalyzeFolder анализирует одну папку проекта (не рекурсивно)
func (a *Analyzer) AnalyzeFolder(folder string) (*ProjectInfo, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", folder, err)
	}

	rel, err := filepath.Rel(a.root, folder)
	if err != nil {
		rel = filepath.Base(folder)
	}

	info := &ProjectInfo{
		FolderName:   filepath.Base(folder),
		RelativePath: rel,
		ProjectType:  TypeUnknown,
	}
	info.Params = ExtractParams(info.FolderName)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info.Counts.TotalFiles++
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))

		switch classifyFile(e.Name()) {
		case "kompas_assembly":
			info.Counts.KompasAssemblies++
			// Пробуем извлечь параметры из имени файла, если еще не нашли
			if info.Params == nil {
				info.Params = ExtractParams(stem)
			}
		case "kompas_part":
			info.Counts.KompasParts++
		case "kompas_drawing":
			info.Counts.KompasDrawings++
		case "solidworks_assembly":
			info.Counts.SolidWorksAssemblies++
			if info.Params == nil {
				info.Params = ExtractParams(stem)
			}
		case "solidworks_part":
			info.Counts.SolidWorksParts++
		case "solidworks_drawing":
			info.Counts.SolidWorksDrawings++
		case "dxf":
			info.Counts.DXFFiles++
		case "archive":
			info.Counts.Archives++
		}
	}

	switch {
	case info.Counts.KompasAssemblies > 0:
		info.ProjectType = TypeKompas
	case info.Counts.SolidWorksAssemblies > 0:
		info.ProjectType = TypeSolidWorks
	case info.Counts.Archives > 0:
		info.ProjectType = TypeArchive
	case info.Counts.DXFFiles > 0:
		info.ProjectType = TypeDXFOnly
	}

	return info, nil
}

// Analyze сканирует все подпапки первого уровня и собирает статистику
func (a *Analyzer) Analyze() error {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return fmt.Errorf("read projects folder %s: %w", a.root, err)
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, filepath.Join(a.root, e.Name()))
		}
	}
	a.Stats.TotalFolders = len(folders)

	if len(folders) == 0 {
		a.logger.Warn("Не найдено ни одной папки с проектами", zap.String("root", a.root))
		return nil
	}
	a.logger.Info("Найдено папок для анализа", zap.Int("count", len(folders)))

	for i, folder := range folders {
		info, err := a.AnalyzeFolder(folder)
		if err != nil {
			a.logger.Error("Ошибка при анализе папки",
				zap.String("folder", filepath.Base(folder)), zap.Error(err))
			continue
		}

		a.Projects = append(a.Projects, *info)
		a.accumulate(info)

		if info.HasParams() {
			a.logger.Info("Проект проанализирован",
				zap.Int("index", i+1),
				zap.String("type", info.ProjectType),
				zap.Int("H", info.Params.H),
				zap.Int("B1", info.Params.B1),
				zap.Int("L1", info.Params.L1),
				zap.Int("files", info.Counts.TotalFiles))
		} else {
			a.logger.Info("Проект без параметров",
				zap.Int("index", i+1),
				zap.String("type", info.ProjectType),
				zap.Int("files", info.Counts.TotalFiles))
		}
	}

	return nil
}

func (a *Analyzer) accumulate(info *ProjectInfo) {
	s := &a.Stats
	s.Counts.KompasAssemblies += info.Counts.KompasAssemblies
	s.Counts.KompasParts += info.Counts.KompasParts
	s.Counts.KompasDrawings += info.Counts.KompasDrawings
	s.Counts.SolidWorksAssemblies += info.Counts.SolidWorksAssemblies
	s.Counts.SolidWorksParts += info.Counts.SolidWorksParts
	s.Counts.SolidWorksDrawings += info.Counts.SolidWorksDrawings
	s.Counts.DXFFiles += info.Counts.DXFFiles
	s.Counts.Archives += info.Counts.Archives
	s.TotalFiles += info.Counts.TotalFiles
	s.ProjectTypes[info.ProjectType]++

	if info.HasParams() {
		s.ProjectsWithParams++
		s.HValues[info.Params.H]++
		s.B1Values[info.Params.B1]++
		s.L1Values[info.Params.L1]++
		s.Configurations[fmt.Sprintf("%dx%dx%d", info.Params.H, info.Params.B1, info.Params.L1)]++
	}
}
