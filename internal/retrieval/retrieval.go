// Package retrieval re-ranks stored memories for context injection. It is a
// cheap, storage-agnostic layer that blends the store's own result order
// with a time-decay freshness score, so it works with any Store that only
// supports substring search.
package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rcliao/aimemo/internal/model"
	"github.com/rcliao/aimemo/internal/store"
)

const (
	// DefaultLimit is the number of memories returned when none is given.
	DefaultLimit = 5

	// DefaultRecencyWeight is the blend factor between rank order and
	// recency when the caller does not supply one.
	DefaultRecencyWeight = 0.3

	// overfetchFactor is how many extra candidates are pulled from the
	// store for re-ranking.
	overfetchFactor = 3

	// fallbackRecency is used when a memory has no usable timestamp.
	fallbackRecency = 0.5
)

// ContextParams holds parameters for relevant-context retrieval.
type ContextParams struct {
	Namespace string
	Query     string
	Category  model.Category // empty means no filter
	Limit     int            // <= 0 means DefaultLimit

	// RecencyWeight blends rank and recency scores. Values outside
	// (0, 1] select DefaultRecencyWeight.
	RecencyWeight float64
}

// Retriever ranks store search results for context injection.
type Retriever struct {
	store store.Store
	now   func() time.Time
}

// New creates a Retriever backed by the given store.
func New(s store.Store) *Retriever {
	return &Retriever{store: s, now: time.Now}
}

// RelevantContext fetches candidates from the store and returns up to
// p.Limit memories, most relevant first.
//
// Candidates are over-fetched (limit * 3) with the same query, namespace
// and category filters. Each candidate gets a rank score of
// 1 - index/count (the store's order treated as a relevance proxy) and a
// recency score of 1/(1+ln(1+ageHours)), with 0.5 when the timestamp is
// unusable. The final score blends the two by the recency weight; ties
// keep the store's relative order.
func (r *Retriever) RelevantContext(ctx context.Context, p ContextParams) ([]model.Memory, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	weight := p.RecencyWeight
	if weight <= 0 || weight > 1 {
		weight = DefaultRecencyWeight
	}

	candidates, err := r.store.Search(ctx, store.SearchParams{
		Namespace: p.Namespace,
		Query:     p.Query,
		Category:  p.Category,
		Limit:     limit * overfetchFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	type scored struct {
		memory model.Memory
		score  float64
	}
	now := r.now().UTC()
	ranked := make([]scored, len(candidates))
	for i, m := range candidates {
		rankScore := 1.0 - float64(i)/float64(len(candidates))

		recencyScore := fallbackRecency
		if !m.Timestamp.IsZero() {
			ageHours := now.Sub(m.Timestamp).Hours()
			if ageHours < 0 {
				ageHours = 0
			}
			recencyScore = 1.0 / (1.0 + math.Log1p(ageHours))
		}

		ranked[i] = scored{
			memory: m,
			score:  rankScore*(1-weight) + recencyScore*weight,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]model.Memory, limit)
	for i := range out {
		out[i] = ranked[i].memory
	}
	return out, nil
}

// FormatContext renders memories as a context block: a fixed header line
// followed by one line per memory. A memory with no category gets no
// bracket prefix at all. Empty input renders as the empty string.
func FormatContext(memories []model.Memory) string {
	if len(memories) == 0 {
		return ""
	}

	parts := []string{"Previous context:"}
	for _, m := range memories {
		if m.Category != "" {
			parts = append(parts, fmt.Sprintf("- [%s] %s", strings.ToUpper(string(m.Category)), m.Content))
		} else {
			parts = append(parts, "- "+m.Content)
		}
	}
	return strings.Join(parts, "\n")
}
