// Package project содержит файловые операции над папкой проекта:
// копирование, организацию BMP, переименование DXF-разверток.
package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
)

// Copier копирует проекты с фильтрацией служебных файлов
type Copier struct {
	logger *zap.Logger
}

// NewCopier создает копировщик
func NewCopier(logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{logger: logger}
}

// CopyResult — результат копирования проекта
type CopyResult struct {
	CopiedPath   string
	CopiedFiles  int
	SkippedFiles int
}

// skipFile отфильтровывает временные и служебные файлы
func skipFile(name string) bool {
	switch {
	case strings.HasSuffix(name, ".bak"): // резервные копии КОМПАС
		return true
	case strings.HasSuffix(name, "~"), strings.HasPrefix(name, "~"):
		return true
	case strings.HasSuffix(name, ".tmp"):
		return true
	case name == "Thumbs.db", name == ".DS_Store":
		return true
	}
	return false
}

// CopyProject копирует проект в <targetFolder>/<projectName>.
// Существующая копия удаляется, служебные файлы пропускаются.
func (c *Copier) CopyProject(sourcePath, targetFolder, projectName string) (*CopyResult, error) {
	src, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, sourcePath)
	}
	if !src.IsDir() {
		return nil, fmt.Errorf("%w: не папка: %s", kerrors.ErrProjectNotFound, sourcePath)
	}

	targetPath := filepath.Join(targetFolder, projectName)
	if err := os.MkdirAll(targetFolder, 0o755); err != nil {
		return nil, fmt.Errorf("create target folder: %w", err)
	}
	if _, err := os.Stat(targetPath); err == nil {
		c.logger.Info("Удаление существующего проекта", zap.String("path", targetPath))
		if err := os.RemoveAll(targetPath); err != nil {
			return nil, fmt.Errorf("remove existing project: %w", err)
		}
	}

	c.logger.Info("Копирование проекта",
		zap.String("from", sourcePath), zap.String("to", targetPath))

	result := &CopyResult{CopiedPath: targetPath}
	if err := copyTree(sourcePath, targetPath, result); err != nil {
		return nil, err
	}

	c.logger.Info("Проект скопирован",
		zap.Int("files", result.CopiedFiles), zap.Int("skipped", result.SkippedFiles))
	return result, nil
}

func copyTree(src, dst string, result *CopyResult) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if skipFile(e.Name()) {
			result.SkippedFiles++
			continue
		}
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := copyTree(from, to, result); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(from, to); err != nil {
			return err
		}
		result.CopiedFiles++
	}
	return nil
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
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// RenameMainAssembly переименовывает первый найденный файл сборки в <projectName>.a3d
func (c *Copier) RenameMainAssembly(projectPath, projectName string) (string, error) {
	assemblies, err := filepath.Glob(filepath.Join(projectPath, "*.a3d"))
	if err != nil || len(assemblies) == 0 {
		return "", kerrors.ErrAssemblyNotFound
	}
	sort.Strings(assemblies)

	newPath := filepath.Join(projectPath, projectName+".a3d")
	if assemblies[0] == newPath {
		return newPath, nil
	}

	c.logger.Info("Переименование главной сборки",
		zap.String("from", filepath.Base(assemblies[0])),
		zap.String("to", filepath.Base(newPath)))
	if err := os.Rename(assemblies[0], newPath); err != nil {
		return "", fmt.Errorf("rename assembly: %w", err)
	}
	return newPath, nil
}

// Info — информация о файлах проекта
type Info struct {
	ProjectPath   string
	AssemblyFiles []string
	DrawingFiles  []string
	PartFiles     []string
	OtherFiles    []string
	TotalFiles    int
}

// CollectInfo собирает информацию о проекте (рекурсивно)
func CollectInfo(projectPath string) (*Info, error) {
	info := &Info{ProjectPath: projectPath}

	err := filepath.WalkDir(projectPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".a3d":
			info.AssemblyFiles = append(info.AssemblyFiles, path)
		case ".cdw":
			info.DrawingFiles = append(info.DrawingFiles, path)
		case ".m3d":
			info.PartFiles = append(info.PartFiles, path)
		default:
			info.OtherFiles = append(info.OtherFiles, path)
		}
		info.TotalFiles++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, projectPath)
	}
	return info, nil
}
