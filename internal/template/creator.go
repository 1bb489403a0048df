package template

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// Служебные папки, которые не несут геометрии и в шаблон не попадают
var skipDirNames = map[string]bool{
	constants.DirBMP: true,
	constants.DirPDF: true,
	constants.DirDXF: true,
	"Исходники разверток с номерами": true,
}

// Creator создает шаблоны из существующих проектов
type Creator struct {
	store        *Store
	templatesDir string
	logger       *zap.Logger
	now          func() time.Time
}

// NewCreator создает Creator. nowFn нужен для тестов, nil — time.Now.
func NewCreator(store *Store, templatesDir string, logger *zap.Logger, nowFn func() time.Time) *Creator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Creator{store: store, templatesDir: templatesDir, logger: logger, now: nowFn}
}

// CreateOptions — параметры создания шаблона
type CreateOptions struct {
	Name        string
	Description string
	Parameters  map[string]int
	Tags        []string
}

// CreateFromProject копирует проект в библиотеку и регистрирует шаблон.
// Служебные файлы и папки заказных чертежей отфильтровываются.
func (c *Creator) CreateFromProject(projectPath string, opts CreateOptions) (*Template, error) {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, projectPath)
	}

	now := c.now()
	id := "tpl_" + now.Format("20060102_150405")
	dst := filepath.Join(c.templatesDir, id)

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("create template folder: %w", err)
	}

	fileCount, err := c.copyFiltered(projectPath, dst)
	if err != nil {
		os.RemoveAll(dst)
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(projectPath)
	}

	t := &Template{
		ID:            id,
		Name:          name,
		Description:   opts.Description,
		CreatedAt:     now,
		Parameters:    opts.Parameters,
		Tags:          opts.Tags,
		Path:          dst,
		SourceProject: projectPath,
		FileCount:     fileCount,
	}
	if t.Parameters == nil {
		t.Parameters = map[string]int{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}

	if err := c.writeReadme(dst, t); err != nil {
		os.RemoveAll(dst)
		return nil, err
	}

	if err := c.store.Add(t); err != nil {
		os.RemoveAll(dst)
		return nil, err
	}

	c.logger.Info("Шаблон создан",
		zap.String("id", t.ID),
		zap.String("name", t.Name),
		zap.Int("files", t.FileCount))
	return t, nil
}

func (c *Creator) copyFiltered(src, dst string) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("read project folder: %w", err)
	}

	count := 0
	for _, e := range entries {
		name := e.Name()
		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)

		if e.IsDir() {
			if skipTemplateDir(name) {
				continue
			}
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return count, err
			}
			n, err := c.copyFiltered(srcPath, dstPath)
			count += n
			if err != nil {
				return count, err
			}
			continue
		}

		if skipTemplateFile(name) {
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return count, fmt.Errorf("copy %s: %w", name, err)
		}
		count++
	}
	return count, nil
}

// skipTemplateDir отсекает служебные папки и папки заказных
// чертежей вида "A-123" / "А-123"
func skipTemplateDir(name string) bool {
	if skipDirNames[name] {
		return true
	}
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "A-") || strings.Contains(upper, "А-")
}

func skipTemplateFile(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bak", ".tmp", ".rar", ".zip":
		return true
	}
	return false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// writeReadme кладет в папку шаблона README.md с метаданными
func (c *Creator) writeReadme(dir string, t *Template) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Шаблон: %s\n\n", t.Name)
	fmt.Fprintf(&b, "- **ID:** %s\n", t.ID)
	fmt.Fprintf(&b, "- **Создан:** %s\n", t.CreatedAt.Format("02.01.2006 15:04"))
	if t.Description != "" {
		fmt.Fprintf(&b, "- **Описание:** %s\n", t.Description)
	}
	if t.SourceProject != "" {
		fmt.Fprintf(&b, "- **Исходный проект:** %s\n", t.SourceProject)
	}
	fmt.Fprintf(&b, "- **Файлов:** %d\n", t.FileCount)

	if len(t.Parameters) > 0 {
		keys := make([]string, 0, len(t.Parameters))
		for k := range t.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\n## Параметры\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s = %d\n", k, t.Parameters[k])
		}
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "\n**Теги:** %s\n", strings.Join(t.Tags, ", "))
	}

	return os.WriteFile(filepath.Join(dir, "README.md"), []byte(b.String()), 0o644)
}
