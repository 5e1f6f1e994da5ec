// Package aimemo gives conversational AI applications a persistent memory:
// short text memories are enriched at write time (entity extraction,
// categorization), stored durably per namespace, and retrieved ranked by a
// blend of search order and recency for injection as model context.
package aimemo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rcliao/aimemo/internal/categorize"
	"github.com/rcliao/aimemo/internal/config"
	"github.com/rcliao/aimemo/internal/extract"
	"github.com/rcliao/aimemo/internal/model"
	"github.com/rcliao/aimemo/internal/retrieval"
	"github.com/rcliao/aimemo/internal/store"
)

// Aliases so callers can name the core types without reaching into
// internal packages.
type (
	Memory       = model.Memory
	Entity       = model.Entity
	Category     = model.Category
	Store        = store.Store
	SearchParams = store.SearchParams
	Config       = config.Config
	ContextMode  = config.ContextMode
	Extractor    = extract.Extractor
	Categorizer  = categorize.Categorizer
)

// Re-exported category taxonomy.
const (
	CategoryFact       = model.CategoryFact
	CategoryPreference = model.CategoryPreference
	CategorySkill      = model.CategorySkill
	CategoryRule       = model.CategoryRule
	CategoryContext    = model.CategoryContext
	CategoryUnknown    = model.CategoryUnknown
)

// Re-exported context modes.
const (
	ContextModeSearch  = config.ContextModeSearch
	ContextModeWorking = config.ContextModeWorking
	ContextModeBoth    = config.ContextModeBoth
)

// Memo is the memory system facade. It owns the enrichment pipeline, a
// namespace-scoped view of the store, the retriever and the working
// memory. All methods are safe for concurrent use.
type Memo struct {
	cfg         *config.Config
	store       store.Store
	extractor   extract.Extractor
	categorizer categorize.Categorizer
	retriever   *retrieval.Retriever
	working     *workingMemory
	namespace   string
	logger      *slog.Logger
	ownsStore   bool
	cfgErr      error
}

// New creates a Memo. Without options it loads configuration from the
// environment and opens the SQLite store at the configured path.
func New(opts ...Option) (*Memo, error) {
	m := &Memo{
		cfg:         config.Default(),
		namespace:   "default",
		logger:      slog.Default(),
		extractor:   extract.NewRegexExtractor(),
		categorizer: categorize.NewKeywordCategorizer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cfgErr != nil {
		return nil, m.cfgErr
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if m.store == nil {
		s, err := store.NewSQLiteStore(m.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		m.store = s
		m.ownsStore = true
	}

	m.retriever = retrieval.New(m.store)
	m.working = newWorkingMemory(m.cfg.WorkingMemoryLimit)
	return m, nil
}

// AddOptions carries optional attributes for AddMemory.
type AddOptions struct {
	Metadata map[string]any
	Tags     []string
	Category model.Category // empty means categorize automatically
}

// AddMemory runs the enrichment pipeline on content and persists the
// result, returning the memory ID. Extracted entities land in the metadata
// under the reserved "entities" key. When no category is given the
// categorizer assigns one; with categorization disabled the memory falls
// back to the context category.
func (m *Memo) AddMemory(ctx context.Context, content string, opts AddOptions) (string, error) {
	now := time.Now().UTC()
	id := generateID(content, now)

	meta := make(map[string]any, len(opts.Metadata)+1)
	for k, v := range opts.Metadata {
		meta[k] = v
	}

	if m.cfg.EnableExtraction {
		if entities := m.extractor.Extract(content); len(entities) > 0 {
			meta[model.EntitiesMetadataKey] = entities
		}
	}

	category := opts.Category
	if category != "" && !category.Valid() {
		return "", fmt.Errorf("add memory: category %q: %w", category, store.ErrInvalidArgument)
	}
	if category == "" {
		if m.cfg.EnableCategorization {
			category = m.categorizer.Categorize(content)
		} else {
			category = model.CategoryContext
		}
	}

	mem := &model.Memory{
		ID:        id,
		Content:   content,
		Metadata:  meta,
		Tags:      opts.Tags,
		Namespace: m.namespace,
		Timestamp: now,
		Category:  category,
	}
	if err := m.store.Save(ctx, mem); err != nil {
		return "", fmt.Errorf("add memory: %w", err)
	}

	m.logger.Debug("memory added", "id", id, "namespace", m.namespace, "category", string(category))
	return id, nil
}

// SearchOptions carries optional filters for Search.
type SearchOptions struct {
	Limit    int // <= 0 means 5
	Tags     []string
	Category model.Category
}

// Search returns memories in this Memo's namespace whose content contains
// the query, in the store's raw order.
func (m *Memo) Search(ctx context.Context, query string, opts SearchOptions) ([]model.Memory, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = retrieval.DefaultLimit
	}
	return m.store.Search(ctx, store.SearchParams{
		Namespace: m.namespace,
		Query:     query,
		Tags:      opts.Tags,
		Category:  opts.Category,
		Limit:     limit,
	})
}

// GetContext assembles a context block for the query according to the
// configured context mode: the working-memory block, the ranked search
// block, or both joined by a blank line. An empty result means nothing
// relevant was found.
func (m *Memo) GetContext(ctx context.Context, query string) (string, error) {
	var parts []string

	if m.cfg.Mode == config.ContextModeWorking || m.cfg.Mode == config.ContextModeBoth {
		if block := m.working.format(); block != "" {
			parts = append(parts, block)
		}
	}

	if m.cfg.Mode == config.ContextModeSearch || m.cfg.Mode == config.ContextModeBoth {
		memories, err := m.retriever.RelevantContext(ctx, retrieval.ContextParams{
			Namespace: m.namespace,
			Query:     query,
			Limit:     m.cfg.MaxContextMemories,
		})
		if err != nil {
			return "", fmt.Errorf("get context: %w", err)
		}
		if block := retrieval.FormatContext(memories); block != "" {
			parts = append(parts, block)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// Clear removes all memories in this Memo's namespace.
func (m *Memo) Clear(ctx context.Context) error {
	return m.ClearNamespace(ctx, m.namespace)
}

// ClearNamespace removes all memories in the given namespace.
func (m *Memo) ClearNamespace(ctx context.Context, namespace string) error {
	if err := m.store.Clear(ctx, namespace); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	m.logger.Debug("namespace cleared", "namespace", namespace)
	return nil
}

// Close releases the store if this Memo opened it. A store supplied via
// WithStore stays open; its owner closes it.
func (m *Memo) Close() error {
	if m.ownsStore {
		return m.store.Close()
	}
	return nil
}

// generateID derives a stable 16-hex-char ID from the content and the
// creation instant.
func generateID(content string, t time.Time) string {
	sum := sha256.Sum256([]byte(content + t.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:16]
}
