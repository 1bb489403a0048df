package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// WriteMarkdown пишет отчет по анализу в формате Markdown
func (a *Analyzer) WriteMarkdown(w io.Writer, now time.Time) error {
	var b strings.Builder
	s := &a.Stats

	b.WriteString("# Отчет по анализу проектов (КОМПАС-3D + SolidWorks)\n\n")
	fmt.Fprintf(&b, "**Дата анализа:** %s\n\n", now.Format("02.01.2006 15:04:05"))
	fmt.Fprintf(&b, "**Папка проектов:** `%s`\n\n---\n\n", a.root)

	b.WriteString("## Общая статистика\n\n")
	fmt.Fprintf(&b, "- **Всего папок проанализировано:** %d\n", s.TotalFolders)
	fmt.Fprintf(&b, "- **Всего файлов:** %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "- **Проектов с параметрами (H, B1, L1):** %d\n", s.ProjectsWithParams)
	fmt.Fprintf(&b, "- **Проектов без параметров:** %d\n", s.TotalFolders-s.ProjectsWithParams)
	fmt.Fprintf(&b, "- **Уникальных конфигураций:** %d\n\n", len(s.Configurations))

	b.WriteString("## Статистика по типам проектов\n\n")
	for _, kv := range sortedByCountDesc(s.ProjectTypes) {
		fmt.Fprintf(&b, "- **%s:** %d проектов\n", kv.key, kv.count)
	}
	b.WriteString("\n")

	b.WriteString("## Статистика по типам файлов\n\n")
	b.WriteString("### КОМПАС-3D\n\n")
	fmt.Fprintf(&b, "- **Сборки (.a3d):** %d\n", s.Counts.KompasAssemblies)
	fmt.Fprintf(&b, "- **Детали (.m3d):** %d\n", s.Counts.KompasParts)
	fmt.Fprintf(&b, "- **Чертежи (.cdw):** %d\n", s.Counts.KompasDrawings)
	b.WriteString("\n### SolidWorks\n\n")
	fmt.Fprintf(&b, "- **Сборки (.sldasm):** %d\n", s.Counts.SolidWorksAssemblies)
	fmt.Fprintf(&b, "- **Детали (.sldprt):** %d\n", s.Counts.SolidWorksParts)
	fmt.Fprintf(&b, "- **Чертежи (.slddrw):** %d\n", s.Counts.SolidWorksDrawings)
	b.WriteString("\n### Другие\n\n")
	fmt.Fprintf(&b, "- **DXF файлы:** %d\n", s.Counts.DXFFiles)
	fmt.Fprintf(&b, "- **Архивы (RAR/ZIP/7Z):** %d\n\n", s.Counts.Archives)

	b.WriteString("## Статистика по параметрам\n\n")
	writeParamTable(&b, "H (высота конвектора)", s.HValues)
	writeParamTable(&b, "B1 (ширина теплообменника)", s.B1Values)
	writeParamTable(&b, "L1 (длина конвектора)", s.L1Values)

	b.WriteString("## Топ-20 самых используемых конфигураций\n\n")
	b.WriteString("| № | Конфигурация (HxB1xL1) | Количество проектов |\n")
	b.WriteString("|---|------------------------|---------------------|\n")
	top := sortedByCountDesc(s.Configurations)
	if len(top) > 20 {
		top = top[:20]
	}
	for i, kv := range top {
		fmt.Fprintf(&b, "| %d | %s | %d |\n", i+1, kv.key, kv.count)
	}
	b.WriteString("\n")

	withParams, withoutParams := a.splitProjects()

	if len(withParams) > 0 {
		b.WriteString("## Проекты с параметрами (H, B1, L1)\n\n")
		b.WriteString("| № | H | B1 | L1 | Тип | Папка | Файлов | Конфиденс |\n")
		b.WriteString("|---|---|----|----|-----|-------|--------|-----------|\n")
		for i, p := range withParams {
			fmt.Fprintf(&b, "| %d | %d | %d | %d | %s | `%s` | %d | %s |\n",
				i+1, p.Params.H, p.Params.B1, p.Params.L1,
				p.ProjectType, truncate(p.FolderName, 40), p.Counts.TotalFiles, p.Params.Confidence)
		}
		b.WriteString("\n")
	}

	if len(withoutParams) > 0 {
		b.WriteString("## Проекты без параметров\n\n")
		b.WriteString("| № | Папка | Тип проекта | Файлов | DXF | Архивов |\n")
		b.WriteString("|---|-------|-------------|--------|-----|---------|\n")
		for i, p := range withoutParams {
			fmt.Fprintf(&b, "| %d | `%s` | %s | %d | %d | %d |\n",
				i+1, truncate(p.FolderName, 50), p.ProjectType,
				p.Counts.TotalFiles, p.Counts.DXFFiles, p.Counts.Archives)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n**Легенда:** high = точное совпадение шаблону, medium = приблизительное совпадение\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON пишет данные анализа в JSON для программной обработки
func (a *Analyzer) WriteJSON(w io.Writer, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Statistics   *Statistics   `json:"statistics"`
		Projects     []ProjectInfo `json:"projects"`
		AnalysisDate string        `json:"analysis_date"`
	}{
		Statistics:   &a.Stats,
		Projects:     a.Projects,
		AnalysisDate: now.Format(time.RFC3339),
	})
}

// SaveReports сохраняет Markdown-отчет и его JSON-двойник
func (a *Analyzer) SaveReports(mdPath string, now time.Time) error {
	md, err := os.Create(mdPath)
	if err != nil {
		return err
	}
	defer md.Close()
	if err := a.WriteMarkdown(md, now); err != nil {
		return err
	}

	jsonPath := strings.TrimSuffix(mdPath, ".md") + ".json"
	js, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	defer js.Close()
	return a.WriteJSON(js, now)
}

func (a *Analyzer) splitProjects() (with, without []ProjectInfo) {
	for _, p := range a.Projects {
		if p.HasParams() {
			with = append(with, p)
		} else {
			without = append(without, p)
		}
	}
	sort.Slice(with, func(i, j int) bool {
		if with[i].Params.H != with[j].Params.H {
			return with[i].Params.H < with[j].Params.H
		}
		if with[i].Params.B1 != with[j].Params.B1 {
			return with[i].Params.B1 < with[j].Params.B1
		}
		return with[i].Params.L1 < with[j].Params.L1
	})
	return with, without
}

func writeParamTable(b *strings.Builder, title string, values map[int]int) {
	fmt.Fprintf(b, "### Параметр %s\n\n", title)
	if len(values) == 0 {
		b.WriteString("Нет данных\n\n")
		return
	}

	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	fmt.Fprintf(b, "- **Диапазон:** %d - %d мм\n", keys[0], keys[len(keys)-1])
	fmt.Fprintf(b, "- **Уникальных значений:** %d\n\n", len(keys))
	b.WriteString("| Значение (мм) | Количество проектов |\n")
	b.WriteString("|---------------|---------------------|\n")
	for _, k := range keys {
		fmt.Fprintf(b, "| %d | %d |\n", k, values[k])
	}
	b.WriteString("\n")
}

type keyCount struct {
	key   string
	count int
}

func sortedByCountDesc(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, v := range m {
		out = append(out, keyCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
