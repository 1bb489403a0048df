package template

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, MigrateUp(db))
	return db
}

func TestOpen_CreatesMissingLibraryDir(t *testing.T) {
	// Первый запуск: папки библиотеки шаблонов еще нет
	dbPath := filepath.Join(t.TempDir(), "templates", "templates.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, MigrateUp(db))

	require.FileExists(t, dbPath)
}

func sampleTemplate(id string, created time.Time) *Template {
	return &Template{
		ID:         id,
		Name:       "Конвектор 90.260.1000",
		CreatedAt:  created,
		Parameters: map[string]int{"H": 90, "B1": 260, "L1": 1000},
		Tags:       []string{"lite", "стандарт"},
		Path:       "",
	}
}

func TestStore_AddGet(t *testing.T) {
	store := NewStore(newTestDB(t), nil)
	created := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(sampleTemplate("tpl_20260826_100000", created)))

	got, err := store.Get("tpl_20260826_100000")
	require.NoError(t, err)
	require.Equal(t, "Конвектор 90.260.1000", got.Name)
	require.Equal(t, map[string]int{"H": 90, "B1": 260, "L1": 1000}, got.Parameters)
	require.Equal(t, []string{"lite", "стандарт"}, got.Tags)
	require.True(t, got.CreatedAt.Equal(created))
	require.Nil(t, got.LastUsed)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := NewStore(newTestDB(t), nil)

	_, err := store.Get("tpl_nope")
	require.ErrorIs(t, err, kerrors.ErrTemplateNotFound)
}

func TestStore_Search(t *testing.T) {
	store := NewStore(newTestDB(t), nil)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	a := sampleTemplate("tpl_a", base)
	a.Name = "Конвектор низкий"
	a.Tags = []string{"низкий"}
	b := sampleTemplate("tpl_b", base.Add(time.Hour))
	b.Name = "Теплообменник"
	b.Description = "с удлиненным коробом"
	require.NoError(t, store.Add(a))
	require.NoError(t, store.Add(b))

	got, err := store.Search("конвектор")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "tpl_a", got[0].ID)

	got, err = store.Search("коробом")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "tpl_b", got[0].ID)

	got, err = store.Search("низкий")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestStore_Search_CyrillicCaseFolding(t *testing.T) {
	store := NewStore(newTestDB(t), nil)

	tpl := sampleTemplate("tpl_c", time.Now().UTC())
	tpl.Name = "Конвектор низкий"
	require.NoError(t, store.Add(tpl))

	// Регистр кириллицы не должен влиять на поиск
	for _, q := range []string{"конвектор", "КОНВЕКТОР", "Конвектор"} {
		got, err := store.Search(q)
		require.NoError(t, err)
		require.Len(t, got, 1, "запрос %q", q)
	}
}

func TestStore_Delete_RemovesRowAndFolder(t *testing.T) {
	store := NewStore(newTestDB(t), nil)

	dir := filepath.Join(t.TempDir(), "tpl_x")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001 - Корпус.m3d"), []byte("m3d"), 0o644))

	tpl := sampleTemplate("tpl_x", time.Now().UTC())
	tpl.Path = dir
	require.NoError(t, store.Add(tpl))

	require.NoError(t, store.Delete("tpl_x"))

	_, err := store.Get("tpl_x")
	require.ErrorIs(t, err, kerrors.ErrTemplateNotFound)
	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestStore_RecordUsage(t *testing.T) {
	store := NewStore(newTestDB(t), nil)
	require.NoError(t, store.Add(sampleTemplate("tpl_u", time.Now().UTC())))

	used := time.Date(2026, 8, 26, 12, 30, 0, 0, time.UTC)
	require.NoError(t, store.RecordUsage("tpl_u", used))
	require.NoError(t, store.RecordUsage("tpl_u", used.Add(time.Minute)))

	got, err := store.Get("tpl_u")
	require.NoError(t, err)
	require.Equal(t, 2, got.UsageCount)
	require.NotNil(t, got.LastUsed)
	require.True(t, got.LastUsed.Equal(used.Add(time.Minute)))

	require.ErrorIs(t, store.RecordUsage("tpl_nope", used), kerrors.ErrTemplateNotFound)
}

func TestStore_Statistics(t *testing.T) {
	store := NewStore(newTestDB(t), nil)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	old := sampleTemplate("tpl_old", base)
	old.UsageCount = 5
	fresh := sampleTemplate("tpl_new", base.Add(48*time.Hour))
	require.NoError(t, store.Add(old))
	require.NoError(t, store.Add(fresh))

	stats, err := store.GetStatistics()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, "tpl_old", stats.MostUsed.ID)
	require.Equal(t, "tpl_new", stats.Newest.ID)
}

func TestStore_Statistics_Empty(t *testing.T) {
	store := NewStore(newTestDB(t), nil)

	stats, err := store.GetStatistics()
	require.NoError(t, err)
	require.Equal(t, 0, stats.Total)
	require.Nil(t, stats.MostUsed)
	require.Nil(t, stats.Newest)
}

func TestCreateFromProject(t *testing.T) {
	store := NewStore(newTestDB(t), nil)
	templatesDir := t.TempDir()

	project := filepath.Join(t.TempDir(), "ZVD.LITE.90.260 Конвектор (Заказ-1)")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "BMP"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "A-123"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "Детали"), 0o755))

	files := map[string]string{
		"Сборка.a3d":                      "a3d",
		"001 - Корпус.m3d":                "m3d",
		"~$Сборка.a3d":                    "lock",
		"backup.bak":                      "bak",
		"archive.rar":                     "rar",
		filepath.Join("BMP", "x.bmp"):     "bmp",
		filepath.Join("A-123", "z.cdw"):   "cdw",
		filepath.Join("Детали", "002.m3d"): "m3d",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(project, name), []byte(body), 0o644))
	}

	fixed := time.Date(2026, 8, 26, 14, 5, 9, 0, time.UTC)
	creator := NewCreator(store, templatesDir, nil, func() time.Time { return fixed })

	tpl, err := creator.CreateFromProject(project, CreateOptions{
		Description: "Типовой низкий конвектор",
		Parameters:  map[string]int{"H": 90, "B1": 260},
		Tags:        []string{"lite"},
	})
	require.NoError(t, err)

	require.Equal(t, "tpl_20260826_140509", tpl.ID)
	require.Equal(t, filepath.Base(project), tpl.Name)
	require.Equal(t, 3, tpl.FileCount)

	// Полезные файлы скопированы, служебные отброшены
	require.FileExists(t, filepath.Join(tpl.Path, "Сборка.a3d"))
	require.FileExists(t, filepath.Join(tpl.Path, "Детали", "002.m3d"))
	require.FileExists(t, filepath.Join(tpl.Path, "README.md"))
	require.NoFileExists(t, filepath.Join(tpl.Path, "~$Сборка.a3d"))
	require.NoFileExists(t, filepath.Join(tpl.Path, "backup.bak"))
	require.NoFileExists(t, filepath.Join(tpl.Path, "archive.rar"))
	require.NoDirExists(t, filepath.Join(tpl.Path, "BMP"))
	require.NoDirExists(t, filepath.Join(tpl.Path, "A-123"))

	readme, err := os.ReadFile(filepath.Join(tpl.Path, "README.md"))
	require.NoError(t, err)
	require.Contains(t, string(readme), "tpl_20260826_140509")
	require.Contains(t, string(readme), "H = 90")

	// Запись попала в базу
	got, err := store.Get(tpl.ID)
	require.NoError(t, err)
	require.Equal(t, "Типовой низкий конвектор", got.Description)
}

func TestCreateFromProject_MissingSource(t *testing.T) {
	store := NewStore(newTestDB(t), nil)
	creator := NewCreator(store, t.TempDir(), nil, nil)

	_, err := creator.CreateFromProject(filepath.Join(t.TempDir(), "нет"), CreateOptions{})
	require.ErrorIs(t, err, kerrors.ErrProjectNotFound)
}
