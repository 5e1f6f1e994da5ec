package store

import (
	"context"
	"os"

	"github.com/rcliao/aimemo/internal/model"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string           `json:"db_path"`
	DBSizeBytes   int64            `json:"db_size_bytes"`
	TotalMemories int              `json:"total_memories"`
	Namespaces    []NamespaceStats `json:"namespaces"`
	Categories    map[string]int   `json:"categories"`
}

// NamespaceStats holds per-namespace counts.
type NamespaceStats struct {
	Namespace string `json:"namespace"`
	Count     int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Categories: map[string]int{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&st.TotalMemories)

	rows, err := s.db.QueryContext(ctx, `
		SELECT ns, COUNT(*) AS cnt
		FROM memories
		GROUP BY ns ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var ns NamespaceStats
		rows.Scan(&ns.Namespace, &ns.Count)
		st.Namespaces = append(st.Namespaces, ns)
	}
	rows.Close()

	catRows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM memories GROUP BY category`)
	if err != nil {
		return st, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var cat string
		var cnt int
		catRows.Scan(&cat, &cnt)
		st.Categories[cat] = cnt
	}

	return st, nil
}

// ListNamespaces returns all namespaces with their memory counts.
func (s *SQLiteStore) ListNamespaces(ctx context.Context) ([]NamespaceStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ns, COUNT(*) AS cnt FROM memories GROUP BY ns ORDER BY ns`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NamespaceStats
	for rows.Next() {
		var ns NamespaceStats
		if err := rows.Scan(&ns.Namespace, &ns.Count); err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	return out, rows.Err()
}

// ExportAll returns all memories, optionally filtered by namespace, in
// stable (namespace, timestamp) order. Used by the CLI export command.
func (s *SQLiteStore) ExportAll(ctx context.Context, namespace string) ([]model.Memory, error) {
	query := `SELECT id, ns, content, metadata, tags, created_at, category
	          FROM memories`
	args := []interface{}{}
	if namespace != "" {
		query += ` WHERE ns = ?`
		args = append(args, namespace)
	}
	query += ` ORDER BY ns, created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

// Import saves memories from an export. Memories with an ID already present
// overwrite the stored record (Save upsert semantics).
func (s *SQLiteStore) Import(ctx context.Context, memories []model.Memory) (int, error) {
	imported := 0
	for i := range memories {
		if err := s.Save(ctx, &memories[i]); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
