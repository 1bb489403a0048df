package analyzer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExtractParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want *Params
	}{
		{
			name: "полный формат LITE",
			in:   "ZVD.LITE.126.160.1400",
			want: &Params{H: 126, B1: 160, L1: 1400, ProductType: "LITE", Confidence: ConfidenceHigh},
		},
		{
			name: "полный формат TURBO в середине имени",
			in:   "ZVD.TURBO.80.230.2000 А-191125-2 (ОЦИНКОВКА)",
			want: &Params{H: 80, B1: 230, L1: 2000, ProductType: "TURBO", Confidence: ConfidenceHigh},
		},
		{
			name: "регистронезависимость",
			in:   "zvd.lite.90.260.1000",
			want: &Params{H: 90, B1: 260, L1: 1000, ProductType: "LITE", Confidence: ConfidenceHigh},
		},
		{
			name: "голая тройка в допустимых диапазонах",
			in:   "Конвектор 126.160.1400",
			want: &Params{H: 126, B1: 160, L1: 1400, ProductType: "unknown", Confidence: ConfidenceMedium},
		},
		{
			name: "тройка вне диапазонов отбрасывается",
			in:   "10.20.9000",
			want: nil,
		},
		{
			name: "нет параметров",
			in:   "Старый проект",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ExtractParams(tc.in))
		})
	}
}

// makeProject создает папку проекта с пустыми файлами
func makeProject(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeProject(t, root, "ZVD.LITE.126.160.1400",
		"ZVD.LITE.126.160.1400.a3d", "001 - Корпус короба.m3d", "Чертеж.cdw")
	makeProject(t, root, "ZVD.LITE.126.160.1400 копия",
		"ZVD.LITE.126.160.1400.a3d")
	makeProject(t, root, "Поставка", "архив.rar")
	makeProject(t, root, "Развертки", "деталь.dxf")

	a := New(root, nil)
	require.NoError(t, a.Analyze())

	require.Equal(t, 4, a.Stats.TotalFolders)
	require.Len(t, a.Projects, 4)
	require.Equal(t, 2, a.Stats.ProjectsWithParams)
	require.Equal(t, 2, a.Stats.Counts.KompasAssemblies)
	require.Equal(t, 1, a.Stats.Counts.KompasParts)
	require.Equal(t, 1, a.Stats.Counts.Archives)
	require.Equal(t, 1, a.Stats.Counts.DXFFiles)
	require.Equal(t, 2, a.Stats.Configurations["126x160x1400"])
	require.Equal(t, 2, a.Stats.ProjectTypes[TypeKompas])
	require.Equal(t, 1, a.Stats.ProjectTypes[TypeArchive])
	require.Equal(t, 1, a.Stats.ProjectTypes[TypeDXFOnly])
}

func TestAnalyzeFolder_ParamsFromAssemblyFile(t *testing.T) {
	t.Parallel()

	// Имя папки без параметров — параметры берутся из имени файла сборки
	root := t.TempDir()
	makeProject(t, root, "Проект без имени", "ZVD.TURBO.80.230.2000.a3d")

	a := New(root, nil)
	info, err := a.AnalyzeFolder(filepath.Join(root, "Проект без имени"))
	require.NoError(t, err)

	require.True(t, info.HasParams())
	require.Equal(t, "TURBO", info.Params.ProductType)
	require.Equal(t, TypeKompas, info.ProjectType)
}

func TestReports(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeProject(t, root, "ZVD.LITE.90.260.1000", "ZVD.LITE.90.260.1000.a3d")

	a := New(root, nil)
	require.NoError(t, a.Analyze())

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	md := &bytes.Buffer{}
	require.NoError(t, a.WriteMarkdown(md, now))
	require.Contains(t, md.String(), "Всего папок проанализировано:** 1")
	require.Contains(t, md.String(), "| 90 | 260 | 1000 |")

	js := &bytes.Buffer{}
	require.NoError(t, a.WriteJSON(js, now))
	var decoded struct {
		Statistics struct {
			TotalFolders int `json:"total_folders"`
		} `json:"statistics"`
		Projects []json.RawMessage `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Equal(t, 1, decoded.Statistics.TotalFolders)
	require.Len(t, decoded.Projects, 1)
}

func TestSaveReports(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	makeProject(t, root, "ZVD.LITE.90.260.1000", "ZVD.LITE.90.260.1000.a3d")

	a := New(root, nil)
	require.NoError(t, a.Analyze())

	out := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, a.SaveReports(out, time.Now()))
	require.FileExists(t, out)
	require.FileExists(t, filepath.Join(filepath.Dir(out), "report.json"))
}
