// Package template реализует библиотеку шаблонов проектов: метаданные
// в локальной SQLite-базе, файлы шаблонов — в подпапках рядом с ней.
package template

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Регистрация pure-Go драйвера под именем "sqlite"
	_ "modernc.org/sqlite"
)

// Open открывает (или создает) базу шаблонов вместе с ее папкой.
// Для тестов используйте ":memory:".
func Open(path string) (*sql.DB, error) {
	// SQLite не создает недостающие папки сам; при первом запуске
	// папки библиотеки еще нет
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create template db dir: %w", err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open template db %q: %w", path, err)
	}

	// База локальная и однопользовательская — пул минимальный
	db.SetMaxOpenConns(2)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping template db %q: %w", path, err)
	}
	return db, nil
}
