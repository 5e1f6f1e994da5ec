package aimemo

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// WorkingEntry is one item of the short-term working memory. Entries are
// never persisted; they live only for the life of the Memo.
type WorkingEntry struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// workingMemory is a bounded FIFO guarded by a mutex. Adding past the
// limit evicts the oldest entry.
type workingMemory struct {
	mu      sync.Mutex
	limit   int
	entries []WorkingEntry
}

func newWorkingMemory(limit int) *workingMemory {
	return &workingMemory{limit: limit}
}

func (w *workingMemory) add(content string, metadata map[string]any) WorkingEntry {
	entry := WorkingEntry{
		ID:        uuid.NewString(),
		Content:   content,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, entry)
	if len(w.entries) > w.limit {
		w.entries = w.entries[len(w.entries)-w.limit:]
	}
	return entry
}

func (w *workingMemory) snapshot() []WorkingEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]WorkingEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w *workingMemory) clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = nil
}

// format renders the working-memory context block, or "" when empty.
func (w *workingMemory) format() string {
	entries := w.snapshot()
	if len(entries) == 0 {
		return ""
	}
	parts := []string{"Working Memory:"}
	for _, e := range entries {
		parts = append(parts, "- [WORKING] "+e.Content)
	}
	return strings.Join(parts, "\n")
}

// AddToWorkingMemory appends an entry to the short-term working memory,
// evicting the oldest entry once the configured limit is exceeded.
func (m *Memo) AddToWorkingMemory(content string, metadata map[string]any) WorkingEntry {
	return m.working.add(content, metadata)
}

// WorkingMemory returns a copy of the current working-memory entries,
// oldest first.
func (m *Memo) WorkingMemory() []WorkingEntry {
	return m.working.snapshot()
}

// ClearWorkingMemory drops all working-memory entries.
func (m *Memo) ClearWorkingMemory() {
	m.working.clear()
}
