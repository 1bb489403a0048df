package template

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	kerrors "github.com/zvd-group/kompas-manager/internal/errors"
)

// Template — метаданные шаблона проекта
type Template struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	CreatedAt     time.Time      `json:"created_at"`
	Parameters    map[string]int `json:"parameters"` // H, B1, L1 и т.п.
	Tags          []string       `json:"tags"`
	Path          string         `json:"path"`
	SourceProject string         `json:"source_project"`
	FileCount     int            `json:"file_count"`
	UsageCount    int            `json:"usage_count"`
	LastUsed      *time.Time     `json:"last_used,omitempty"`
}

// Store — хранилище метаданных шаблонов
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStore создает хранилище
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

const templateColumns = "id, name, description, created_at, parameters, tags, path, source_project, file_count, usage_count, last_used"

// Add сохраняет шаблон
func (s *Store) Add(t *Template) error {
	params, err := json.Marshal(t.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO templates (`+templateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.CreatedAt.Format(time.RFC3339),
		string(params), string(tags), t.Path, t.SourceProject,
		t.FileCount, t.UsageCount, nullableTime(t.LastUsed),
	)
	if err != nil {
		return fmt.Errorf("insert template %s: %w", t.ID, err)
	}
	return nil
}

// Get возвращает шаблон по ID
func (s *Store) Get(id string) (*Template, error) {
	row := s.db.QueryRow(`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrTemplateNotFound, id)
	}
	return t, err
}

// List возвращает все шаблоны (новые первыми)
func (s *Store) List() ([]Template, error) {
	return s.query(`SELECT ` + templateColumns + ` FROM templates ORDER BY created_at DESC`)
}

// Search ищет по названию, описанию или тегам без учета регистра.
// NOCASE в SQLite складывает регистр только для ASCII, поэтому
// кириллические запросы фильтруются на стороне Go.
func (s *Store) Search(queryStr string) ([]Template, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(queryStr)
	var out []Template
	for _, t := range all {
		if matchesQuery(&t, needle) {
			out = append(out, t)
		}
	}
	return out, nil
}

func matchesQuery(t *Template, needle string) bool {
	if strings.Contains(strings.ToLower(t.Name), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Delete удаляет шаблон из базы и его папку с диска
func (s *Store) Delete(id string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}

	if t.Path != "" {
		if err := os.RemoveAll(t.Path); err != nil {
			return fmt.Errorf("remove template folder: %w", err)
		}
	}

	if _, err := s.db.Exec(`DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	s.logger.Info("Шаблон удален", zap.String("id", id), zap.String("name", t.Name))
	return nil
}

// RecordUsage увеличивает счетчик использования
func (s *Store) RecordUsage(id string, now time.Time) error {
	res, err := s.db.Exec(
		`UPDATE templates SET usage_count = usage_count + 1, last_used = ? WHERE id = ?`,
		now.Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("record usage %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", kerrors.ErrTemplateNotFound, id)
	}
	return nil
}

// Statistics — сводка по библиотеке шаблонов
type Statistics struct {
	Total    int
	MostUsed *Template
	Newest   *Template
}

// GetStatistics возвращает статистику по шаблонам
func (s *Store) GetStatistics() (*Statistics, error) {
	templates, err := s.List()
	if err != nil {
		return nil, err
	}

	stats := &Statistics{Total: len(templates)}
	if len(templates) == 0 {
		return stats, nil
	}

	mostUsed := &templates[0]
	newest := &templates[0]
	for i := range templates {
		if templates[i].UsageCount > mostUsed.UsageCount {
			mostUsed = &templates[i]
		}
		if templates[i].CreatedAt.After(newest.CreatedAt) {
			newest = &templates[i]
		}
	}
	stats.MostUsed = mostUsed
	stats.Newest = newest
	return stats, nil
}

func (s *Store) query(q string, args ...any) ([]Template, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*Template, error) {
	var t Template
	var createdAt, params, tags string
	var lastUsed sql.NullString

	err := row.Scan(&t.ID, &t.Name, &t.Description, &createdAt, &params, &tags,
		&t.Path, &t.SourceProject, &t.FileCount, &t.UsageCount, &lastUsed)
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &t.Parameters); err != nil {
		return nil, fmt.Errorf("parse parameters: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return nil, fmt.Errorf("parse tags: %w", err)
	}
	if lastUsed.Valid {
		lu, err := time.Parse(time.RFC3339, lastUsed.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_used: %w", err)
		}
		t.LastUsed = &lu
	}
	return &t, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
