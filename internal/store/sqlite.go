package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/aimemo/internal/model"
)

// SQLiteStore implements Store using SQLite. Metadata and tags are
// serialized as JSON text columns and decoded back on read.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// timeLayout is RFC 3339 with fixed-width nanoseconds so that stored
// timestamps sort lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w: %v", ErrStorageFailure, err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w: %v", ErrStorageFailure, err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id         TEXT PRIMARY KEY,
		ns         TEXT NOT NULL,
		content    TEXT NOT NULL,
		metadata   TEXT,
		tags       TEXT,
		created_at TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT 'context'
	);
	CREATE INDEX IF NOT EXISTS idx_memories_ns ON memories(ns);
	CREATE INDEX IF NOT EXISTS idx_memories_ns_category ON memories(ns, category);
	CREATE INDEX IF NOT EXISTS idx_memories_created ON memories(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or overwrites the memory by ID inside a transaction, so a
// concurrent Search never observes a partially written record.
func (s *SQLiteStore) Save(ctx context.Context, m *model.Memory) error {
	if m == nil || m.ID == "" || m.Namespace == "" || m.Timestamp.IsZero() {
		return fmt.Errorf("save: memory needs id, namespace and timestamp: %w", ErrInvalidArgument)
	}
	if !m.Category.Valid() {
		return fmt.Errorf("save: category %q: %w", m.Category, ErrInvalidArgument)
	}

	var metaJSON *string
	if len(m.Metadata) > 0 {
		b, err := json.Marshal(m.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		v := string(b)
		metaJSON = &v
	}

	var tagsJSON *string
	if len(m.Tags) > 0 {
		b, _ := json.Marshal(m.Tags)
		v := string(b)
		tagsJSON = &v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w: %v", ErrStorageFailure, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO memories (id, ns, content, metadata, tags, created_at, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Namespace, m.Content, metaJSON, tagsJSON,
		m.Timestamp.UTC().Format(timeLayout), string(m.Category))
	if err != nil {
		return fmt.Errorf("insert memory: %w: %v", ErrStorageFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w: %v", ErrStorageFailure, err)
	}
	return nil
}

// Search finds memories in the namespace whose content contains the query.
// Matching is case-insensitive for ASCII (SQLite LIKE semantics). Results
// are ordered newest first; an empty result is not an error.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Memory, error) {
	if p.Limit <= 0 {
		return nil, fmt.Errorf("search: limit must be positive: %w", ErrInvalidArgument)
	}
	if p.Category != "" && !p.Category.Valid() {
		return nil, fmt.Errorf("search: category %q: %w", p.Category, ErrInvalidArgument)
	}

	where := []string{"ns = ?", "content LIKE ?"}
	args := []interface{}{p.Namespace, "%" + p.Query + "%"}

	if p.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(p.Category))
	}

	// Tag intersection: any shared tag qualifies. Tags are stored as a
	// JSON array, so probe for the quoted element.
	if len(p.Tags) > 0 {
		probes := make([]string, len(p.Tags))
		for i, tag := range p.Tags {
			probes[i] = "tags LIKE ?"
			args = append(args, "%\""+tag+"\"%")
		}
		where = append(where, "("+strings.Join(probes, " OR ")+")")
	}

	query := fmt.Sprintf(`
		SELECT id, ns, content, metadata, tags, created_at, category
		FROM memories
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w: %v", ErrStorageFailure, err)
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan memory: %w: %v", ErrStorageFailure, err)
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w: %v", ErrStorageFailure, err)
	}

	return memories, nil
}

// Clear deletes all memories in the namespace.
func (s *SQLiteStore) Clear(ctx context.Context, namespace string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE ns = ?`, namespace)
	if err != nil {
		return fmt.Errorf("clear %s: %w: %v", namespace, ErrStorageFailure, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMemory(row scanner) (model.Memory, error) {
	var m model.Memory
	var metaJSON, tagsJSON sql.NullString
	var createdAt, category string

	err := row.Scan(&m.ID, &m.Namespace, &m.Content, &metaJSON, &tagsJSON, &createdAt, &category)
	if err != nil {
		return m, err
	}

	// A timestamp that fails to parse stays zero; the retriever treats
	// that as unknown age rather than failing the read.
	m.Timestamp, _ = time.Parse(time.RFC3339Nano, createdAt)
	m.Category = model.Category(category)
	if metaJSON.Valid {
		json.Unmarshal([]byte(metaJSON.String), &m.Metadata)
	}
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &m.Tags)
	}

	return m, nil
}
