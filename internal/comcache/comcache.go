// Package comcache чистит кэш сгенерированных COM-оберток КОМПАС-3D.
// Устаревший кэш после обновления КОМПАС приводит к ошибкам привязки
// интерфейсов, и его приходится сбрасывать.
package comcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// Result — итог очистки кэша
type Result struct {
	CacheDir string
	Removed  []string
	Errors   []error
}

// Cleaner удаляет записи кэша COM-оберток
type Cleaner struct {
	logger *zap.Logger
	guids  []string
}

// NewCleaner создает Cleaner с фрагментами GUID библиотек КОМПАС
func NewCleaner(logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{logger: logger, guids: constants.KompasTypeLibGUIDs}
}

// ClearSelective удаляет только записи, относящиеся к библиотекам
// КОМПАС. Отсутствие папки кэша — не ошибка.
func (c *Cleaner) ClearSelective(cacheDir string) (*Result, error) {
	return c.clear(cacheDir, c.isKompasEntry)
}

// ClearAll удаляет весь кэш, оставляя только маркер пакета
func (c *Cleaner) ClearAll(cacheDir string) (*Result, error) {
	return c.clear(cacheDir, func(name string) bool {
		return name != "__init__.py"
	})
}

func (c *Cleaner) clear(cacheDir string, match func(string) bool) (*Result, error) {
	res := &Result{CacheDir: cacheDir}

	entries, err := os.ReadDir(cacheDir)
	if os.IsNotExist(err) {
		c.logger.Info("Кэш отсутствует, очистка не требуется", zap.String("dir", cacheDir))
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	for _, e := range entries {
		if !match(e.Name()) {
			continue
		}
		path := filepath.Join(cacheDir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("remove %s: %w", e.Name(), err))
			continue
		}
		res.Removed = append(res.Removed, e.Name())
		c.logger.Debug("Удалена запись кэша", zap.String("entry", e.Name()))
	}

	c.logger.Info("Кэш очищен",
		zap.String("dir", cacheDir),
		zap.Int("removed", len(res.Removed)),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

// isKompasEntry проверяет, содержит ли имя записи GUID одной из
// библиотек типов КОМПАС
func (c *Cleaner) isKompasEntry(name string) bool {
	upper := strings.ToUpper(name)
	for _, guid := range c.guids {
		if strings.Contains(upper, strings.ToUpper(guid)) {
			return true
		}
	}
	return false
}

// DefaultCacheDir возвращает стандартное расположение кэша gen_py
// для текущего пользователя
func DefaultCacheDir() string {
	if dir := os.Getenv("TEMP"); dir != "" {
		return filepath.Join(dir, "gen_py")
	}
	return filepath.Join(os.TempDir(), "gen_py")
}
