package designation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
)

// Part — запись о детали для нумерации
type Part struct {
	Name    string
	Marking string
}

// AssignNumbers присваивает номера уникальным наименованиям в порядке
// первого появления. Детали с одинаковым наименованием получают один
// номер. Служебные записи (пустое обозначение или ведущий "-") пропускаются.
func AssignNumbers(parts []Part) map[string]int {
	numbers := make(map[string]int)
	next := 1
	for _, p := range parts {
		marking := strings.TrimSpace(p.Marking)
		if marking == "" || strings.HasPrefix(marking, "-") {
			continue
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		if _, ok := numbers[name]; !ok {
			numbers[name] = next
			next++
		}
	}
	return numbers
}

// Move — одно запланированное переименование
type Move struct {
	From string
	To   string
}

// Plan — план переименований проекта под новые параметры
type Plan struct {
	Assembly *Move             // переименование файла сборки
	Parts    []Move            // файлы деталей
	Drawings []Move            // сборочные чертежи
	Markings map[string]string // новое имя файла → вычисленное обозначение
}

// PlanProject строит план переименований: сборка получает полное
// обозначение, детали — номера "NNN - Описание", сборочные чертежи —
// префикс с полным обозначением. Файлы не открываются и не изменяются.
func PlanProject(dir string, s Scheme, p Params, order string) (*Plan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, dir)
	}

	plan := &Plan{Markings: make(map[string]string)}
	full := s.Full(p)

	var assemblies, parts, drawings []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".a3d":
			assemblies = append(assemblies, e.Name())
		case ".m3d":
			parts = append(parts, e.Name())
		case ".cdw":
			drawings = append(drawings, e.Name())
		}
	}
	if len(assemblies) == 0 {
		return nil, kerrors.ErrAssemblyNotFound
	}
	sort.Strings(assemblies)
	sort.Strings(parts)
	sort.Strings(drawings)

	// Сборка переименовывается ПЕРЕД любой работой с деталями
	newAssembly := full + ".a3d"
	plan.Assembly = &Move{
		From: filepath.Join(dir, assemblies[0]),
		To:   filepath.Join(dir, newAssembly),
	}
	plan.Markings[newAssembly] = full

	// Детали: существующие номера сохраняются, остальные получают
	// следующий свободный в отсортированном порядке имен
	used := make(map[int]bool)
	for _, name := range parts {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if n := NumberFromStem(stem); n > 0 {
			used[n] = true
		}
	}
	next := 1
	takeNext := func() int {
		for used[next] {
			next++
		}
		used[next] = true
		return next
	}

	for _, name := range parts {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		desc := StripOrderSuffix(DescriptionFromStem(stem))

		// Теплообменник не перенумеровывается: обозначение пересчитывается
		// по правилу L1-300, имя файла остается прежним
		if IsHeatExchanger(desc) {
			plan.Markings[name] = s.HeatExchangerMarking(stem, p)
			continue
		}

		number := NumberFromStem(stem)
		if number == 0 {
			number = takeNext()
		}

		newName := fmt.Sprintf("%03d - %s.m3d", number, desc)
		plan.Parts = append(plan.Parts, Move{
			From: filepath.Join(dir, name),
			To:   filepath.Join(dir, newName),
		})
		plan.Markings[newName] = s.PartMarking(desc, number, p)
	}

	// Сборочные чертежи: "<полное обозначение> - <описание>.cdw"
	for _, name := range drawings {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "конвектор") && !strings.Contains(lower, "сборочный") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		desc := DescriptionFromStem(stem)
		newName := fmt.Sprintf("%s - %s.cdw", full, desc)
		plan.Drawings = append(plan.Drawings, Move{
			From: filepath.Join(dir, name),
			To:   filepath.Join(dir, newName),
		})
	}

	return plan, nil
}

// Apply выполняет переименования плана. Совпадающие имена пропускаются,
// ошибки отдельных файлов собираются и не прерывают остальные.
func (p *Plan) Apply() (renamed int, errs []error) {
	moves := make([]Move, 0, len(p.Parts)+len(p.Drawings)+1)
	if p.Assembly != nil {
		moves = append(moves, *p.Assembly)
	}
	moves = append(moves, p.Parts...)
	moves = append(moves, p.Drawings...)

	for _, m := range moves {
		if m.From == m.To {
			continue
		}
		if err := os.Rename(m.From, m.To); err != nil {
			errs = append(errs, fmt.Errorf("rename %s: %w", filepath.Base(m.From), err))
			continue
		}
		renamed++
	}
	return renamed, errs
}
