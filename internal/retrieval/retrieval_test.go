package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/aimemo/internal/model"
	"github.com/rcliao/aimemo/internal/store"
)

// mockStore returns canned search results and records the requested params.
type mockStore struct {
	results  []model.Memory
	err      error
	lastReq  store.SearchParams
	requests int
}

func (m *mockStore) Save(context.Context, *model.Memory) error { return nil }

func (m *mockStore) Search(_ context.Context, p store.SearchParams) ([]model.Memory, error) {
	m.lastReq = p
	m.requests++
	if m.err != nil {
		return nil, m.err
	}
	if p.Limit < len(m.results) {
		return m.results[:p.Limit], nil
	}
	return m.results, nil
}

func (m *mockStore) Clear(context.Context, string) error { return nil }
func (m *mockStore) Close() error                        { return nil }

func fixedRetriever(s store.Store, now time.Time) *Retriever {
	r := New(s)
	r.now = func() time.Time { return now }
	return r
}

func mem(id, content string, age time.Duration, now time.Time) model.Memory {
	return model.Memory{
		ID:        id,
		Content:   content,
		Namespace: "test",
		Timestamp: now.Add(-age),
		Category:  model.CategoryFact,
	}
}

func TestRelevantContextOverfetch(t *testing.T) {
	now := time.Now().UTC()
	ms := &mockStore{}
	r := fixedRetriever(ms, now)

	_, err := r.RelevantContext(context.Background(), ContextParams{
		Namespace: "test", Query: "q", Limit: 5, Category: model.CategoryFact,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, ms.lastReq.Limit, "over-fetch factor of 3")
	assert.Equal(t, "test", ms.lastReq.Namespace)
	assert.Equal(t, "q", ms.lastReq.Query)
	assert.Equal(t, model.CategoryFact, ms.lastReq.Category)
}

func TestRelevantContextEmptyStore(t *testing.T) {
	r := fixedRetriever(&mockStore{}, time.Now().UTC())

	got, err := r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "q"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRelevantContextStoreError(t *testing.T) {
	ms := &mockStore{err: errors.New("disk gone")}
	r := fixedRetriever(ms, time.Now().UTC())

	_, err := r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "q"})
	assert.Error(t, err)
}

func TestRecencyOutranksStoreOrder(t *testing.T) {
	now := time.Now().UTC()
	ms := &mockStore{results: []model.Memory{
		mem("old", "Python is good", 10*24*time.Hour, now),
		mem("new", "Python is great", 0, now),
	}}
	r := fixedRetriever(ms, now)

	got, err := r.RelevantContext(context.Background(), ContextParams{
		Namespace: "test", Query: "Python", RecencyWeight: 0.6,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID, "fresh memory must outrank a 10-day-old one at weight 0.6")
}

func TestRankOrderDominatesAtLowWeight(t *testing.T) {
	now := time.Now().UTC()
	// Same age, so only rank score differs: store order is preserved.
	ms := &mockStore{results: []model.Memory{
		mem("first", "a", time.Hour, now),
		mem("second", "b", time.Hour, now),
		mem("third", "c", time.Hour, now),
	}}
	r := fixedRetriever(ms, now)

	got, err := r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "x"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestIdenticalMemoriesKeepStoreOrder(t *testing.T) {
	now := time.Now().UTC()
	ms := &mockStore{results: []model.Memory{
		mem("a", "same", time.Hour, now),
		mem("b", "same", time.Hour, now),
	}}
	r := fixedRetriever(ms, now)

	got, err := r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "same"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestMissingTimestampFallback(t *testing.T) {
	now := time.Now().UTC()
	noTS := model.Memory{ID: "nots", Content: "x", Namespace: "test"}
	fresh := mem("fresh", "x", 0, now)
	ms := &mockStore{results: []model.Memory{noTS, fresh}}
	r := fixedRetriever(ms, now)

	// rank(nots)=1.0, rank(fresh)=0.5; recency(nots)=0.5 fallback,
	// recency(fresh)=1.0. At weight 0.9 the fresh memory wins despite
	// the worse rank.
	got, err := r.RelevantContext(context.Background(), ContextParams{
		Namespace: "test", Query: "x", RecencyWeight: 0.9,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestFutureTimestampClampedToZeroAge(t *testing.T) {
	now := time.Now().UTC()
	future := mem("future", "x", -2*time.Hour, now) // timestamp ahead of now
	ms := &mockStore{results: []model.Memory{future}}
	r := fixedRetriever(ms, now)

	got, err := r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "x"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestLimitTruncation(t *testing.T) {
	now := time.Now().UTC()
	ms := &mockStore{}
	for i := 0; i < 9; i++ {
		ms.results = append(ms.results, mem(string(rune('a'+i)), "x", time.Hour, now))
	}
	r := fixedRetriever(ms, now)

	got, err := r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "x", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Fewer candidates than the limit returns them all.
	ms.results = ms.results[:1]
	got, err = r.RelevantContext(context.Background(), ContextParams{Namespace: "test", Query: "x", Limit: 4})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFormatContext(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil))
	assert.Equal(t, "", FormatContext([]model.Memory{}))

	one := []model.Memory{{Content: "Paris is in France", Category: model.CategoryFact}}
	assert.Equal(t, "Previous context:\n- [FACT] Paris is in France", FormatContext(one))

	mixed := []model.Memory{
		{Content: "likes tea", Category: model.CategoryPreference},
		{Content: "no category here"},
	}
	assert.Equal(t, "Previous context:\n- [PREFERENCE] likes tea\n- no category here", FormatContext(mixed))
}
