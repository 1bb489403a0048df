package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// QuantityFunc возвращает количество экземпляров детали в изделии.
// По умолчанию считаются детали проекта с одинаковым наименованием
// (минимум 1); хук позволяет подставить точные значения из сборки.
type QuantityFunc func(projectPath, partStem string) int

// DxfRenamer переименовывает DXF-развертки по данным деталей:
// "NNN - Наименование Qшт (Номер заказа).dxf"
type DxfRenamer struct {
	logger   *zap.Logger
	quantity QuantityFunc
}

// NewDxfRenamer создает переименователь. quantity может быть nil.
func NewDxfRenamer(logger *zap.Logger, quantity QuantityFunc) *DxfRenamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quantity == nil {
		quantity = duplicateStemQuantity
	}
	return &DxfRenamer{logger: logger, quantity: quantity}
}

// duplicateStemQuantity считает детали с тем же наименованием, что у
// сопоставленной: "005 - Стенка" и "006 - Стенка" дают 2шт.
// При любой ошибке чтения папки — 1.
func duplicateStemQuantity(projectPath, partStem string) int {
	target := nameWithoutNumber(partStem)

	files, err := filepath.Glob(filepath.Join(projectPath, "*.m3d"))
	if err != nil {
		return 1
	}

	n := 0
	for _, f := range files {
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if strings.EqualFold(nameWithoutNumber(stem), target) {
			n++
		}
	}
	if n < 1 {
		return 1
	}
	return n
}

// nameWithoutNumber убирает номерной префикс "NNN - " из основы имени
func nameWithoutNumber(stem string) string {
	head, rest, found := strings.Cut(stem, " - ")
	if found && isDigits(strings.TrimSpace(head)) {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(stem)
}

// DxfRenameResult — результат переименования
type DxfRenameResult struct {
	RenamedCount int
	Skipped      []string
	Errors       []error
}

// Маппинг: ключевые слова развертки → ключ детали.
// Более специфичные ключи проверяются ПЕРВЫМИ, пустой ключ детали — пропуск.
var dxfToPartMapping = []struct {
	dxfKey  string
	partKey string
}{
	{"стенка торцевая", "стенка торцевая"},
	{"стенки торцевой", "стенка торцевая"},
	{"корпус короба", "корпус короба"},
	{"корпуса короба", "корпус короба"},
	{"крышка декоративная", "крышка декоративная"},
	{"крышки декоративной", "крышка декоративная"},
	{"укороченной распорки", ""}, // накладка — не переименовываем
	{"распорки", "распорка"},
	{"стенки", "стенка"},         // ПОСЛЕ "стенки торцевой"
	{"стенка", "стенка"},
}

// Rename сопоставляет DXF/*.dxf с деталями *.m3d и переименовывает
func (r *DxfRenamer) Rename(projectPath, orderNumber string) (*DxfRenameResult, error) {
	dxfFolder := filepath.Join(projectPath, constants.DirDXF)
	if _, err := os.Stat(dxfFolder); err != nil {
		return nil, fmt.Errorf("%w: папка DXF не найдена в %s", kerrors.ErrProjectNotFound, projectPath)
	}

	dxfFiles, err := filepath.Glob(filepath.Join(dxfFolder, "*.dxf"))
	if err != nil {
		return nil, err
	}
	partFiles, err := filepath.Glob(filepath.Join(projectPath, "*.m3d"))
	if err != nil {
		return nil, err
	}
	sort.Strings(dxfFiles)
	sort.Strings(partFiles)

	r.logger.Info("Переименование DXF", zap.Int("dxf", len(dxfFiles)), zap.Int("parts", len(partFiles)))

	result := &DxfRenameResult{}
	for _, dxfFile := range dxfFiles {
		if err := r.renameOne(dxfFile, partFiles, projectPath, orderNumber, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", filepath.Base(dxfFile), err))
		}
	}
	return result, nil
}

func (r *DxfRenamer) renameOne(dxfFile string, partFiles []string, projectPath, orderNumber string, result *DxfRenameResult) error {
	stem := strings.TrimSuffix(filepath.Base(dxfFile), filepath.Ext(dxfFile))
	dxfClean := strings.Trim(strings.ReplaceAll(strings.ToLower(stem), "развертка", ""), " -")

	// Явный маппинг проверяется до пословного сравнения
	for _, m := range dxfToPartMapping {
		if wordsSubset(fieldSet(m.dxfKey), fieldSet(dxfClean)) {
			if m.partKey == "" {
				r.logger.Info("Пропуск развертки", zap.String("file", filepath.Base(dxfFile)))
				result.Skipped = append(result.Skipped, filepath.Base(dxfFile))
				return nil
			}
			dxfClean = m.partKey
			break
		}
	}

	number, partName, partStem, ok := matchPart(dxfClean, partFiles)
	if !ok {
		r.logger.Warn("Не найдена деталь для развертки", zap.String("file", filepath.Base(dxfFile)))
		result.Skipped = append(result.Skipped, filepath.Base(dxfFile))
		return nil
	}

	quantity := r.quantity(projectPath, partStem)
	if quantity < 1 {
		quantity = 1
	}

	// Количество указывается всегда, номер заказа — опционально
	newName := fmt.Sprintf("%s - %s %dшт", number, partName, quantity)
	if orderNumber != "" {
		newName += fmt.Sprintf(" (%s)", orderNumber)
	}
	newName += ".dxf"

	newPath := filepath.Join(filepath.Dir(dxfFile), newName)
	if dxfFile == newPath {
		return nil
	}

	r.logger.Info("Переименование развертки",
		zap.String("from", filepath.Base(dxfFile)), zap.String("to", newName))
	if err := os.Rename(dxfFile, newPath); err != nil {
		return err
	}
	result.RenamedCount++
	return nil
}

// matchPart подбирает деталь по пословному сравнению (>3 символов):
// точное совпадение множеств слов приоритетнее подмножества
func matchPart(dxfClean string, partFiles []string) (number, partName, partStem string, ok bool) {
	type candidate struct {
		priority int // 1 — точное совпадение, 2 — подмножество
		number   string
		name     string
		stem     string
	}
	var candidates []candidate

	dxfWords := longWords(dxfClean)

	for _, partFile := range partFiles {
		stem := strings.TrimSuffix(filepath.Base(partFile), filepath.Ext(partFile))
		lower := strings.ToLower(stem)

		// Специальные детали не участвуют в сопоставлении
		if strings.Contains(lower, "накладка") || strings.Contains(lower, "теплообменник") {
			continue
		}

		nameOnly := lower
		if i := strings.Index(nameOnly, " - "); i >= 0 {
			nameOnly = nameOnly[i+3:]
		}
		if i := strings.Index(nameOnly, "("); i >= 0 {
			nameOnly = strings.TrimSpace(nameOnly[:i])
		}

		partWords := longWords(nameOnly)

		exact := len(dxfWords) > 0 && setsEqual(dxfWords, partWords)
		subset := len(dxfWords) > 0 && wordsSubset(dxfWords, partWords)
		if !exact && !subset {
			continue
		}

		// Нужен числовой префикс "NNN - ..."
		head, _, found := strings.Cut(stem, " - ")
		if !found || !isDigits(strings.TrimSpace(head)) {
			continue
		}

		name := stem[strings.Index(stem, " - ")+3:]
		if i := strings.Index(name, "("); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}

		prio := 2
		if exact {
			prio = 1
		}
		candidates = append(candidates, candidate{
			priority: prio,
			number:   strings.TrimSpace(head),
			name:     strings.TrimSpace(name),
			stem:     stem,
		})
	}

	if len(candidates) == 0 {
		return "", "", "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].priority < candidates[j].priority })
	best := candidates[0]
	return best.number, best.name, best.stem, true
}

func fieldSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func longWords(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) > 3 {
			set[w] = true
		}
	}
	return set
}

func wordsSubset(sub, super map[string]bool) bool {
	if len(sub) == 0 {
		return false
	}
	for w := range sub {
		if !super[w] {
			return false
		}
	}
	return true
}

func setsEqual(a, b map[string]bool) bool {
	return len(a) == len(b) && wordsSubset(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
