package project

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// BmpOrganizer перемещает BMP из корня проекта в папку BMP
type BmpOrganizer struct {
	logger *zap.Logger
}

// NewBmpOrganizer создает организатор
func NewBmpOrganizer(logger *zap.Logger) *BmpOrganizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BmpOrganizer{logger: logger}
}

// OrganizeResult — результат организации BMP
type OrganizeResult struct {
	MovedCount int
	TotalCount int
	BmpFolder  string
	Errors     []error
}

// Organize создает папку BMP и перемещает туда все *.bmp из корня проекта.
// Отсутствие BMP файлов — не ошибка.
func (o *BmpOrganizer) Organize(projectPath string) (*OrganizeResult, error) {
	if _, err := os.Stat(projectPath); err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, projectPath)
	}

	bmpFiles, err := filepath.Glob(filepath.Join(projectPath, "*.bmp"))
	if err != nil {
		return nil, err
	}

	result := &OrganizeResult{TotalCount: len(bmpFiles)}
	if len(bmpFiles) == 0 {
		o.logger.Info("BMP файлов в корне проекта не найдено")
		return result, nil
	}

	bmpFolder := filepath.Join(projectPath, constants.DirBMP)
	if err := os.MkdirAll(bmpFolder, 0o755); err != nil {
		return nil, fmt.Errorf("create BMP folder: %w", err)
	}
	result.BmpFolder = bmpFolder

	for _, f := range bmpFiles {
		target := filepath.Join(bmpFolder, filepath.Base(f))
		// Устаревшая копия в целевой папке заменяется
		if _, err := os.Stat(target); err == nil {
			if err := os.Remove(target); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("remove stale %s: %w", filepath.Base(target), err))
				continue
			}
		}
		if err := os.Rename(f, target); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("move %s: %w", filepath.Base(f), err))
			continue
		}
		result.MovedCount++
		o.logger.Info("BMP перемещен", zap.String("file", filepath.Base(f)))
	}

	return result, nil
}
