package snapshots

import (
	"sync"

	"log-stats/internal/models"
)

// HistoryBuffer keeps the most recent snapshots in a fixed-size ring.
// When full, appending evicts the oldest entry.
type HistoryBuffer struct {
	mu      sync.RWMutex
	entries []*models.Snapshot
	start   int // index of the oldest entry
	size    int
}

func NewHistoryBuffer(capacity int) *HistoryBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &HistoryBuffer{entries: make([]*models.Snapshot, capacity)}
}

// Append adds snapshot as the newest entry and reports whether one was evicted.
func (h *HistoryBuffer) Append(snapshot *models.Snapshot) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[(h.start+h.size)%capacity] = snapshot
		h.size++
		return false
	}
	h.entries[h.start] = snapshot
	h.start = (h.start + 1) % capacity
	return true
}

// List returns up to limit of the newest entries, oldest first.
// A limit <= 0 returns everything.
func (h *HistoryBuffer) List(limit int) []*models.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := h.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*models.Snapshot, 0, n)
	capacity := len(h.entries)
	for i := h.size - n; i < h.size; i++ {
		out = append(out, h.entries[(h.start+i)%capacity])
	}
	return out
}

func (h *HistoryBuffer) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

func (h *HistoryBuffer) Cap() int {
	return len(h.entries)
}
