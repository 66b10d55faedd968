package storage

import (
	"maps"
	"slices"
	"sync"

	"github.com/samber/lo"

	"sortline/internal/domain/entity"
	"sortline/internal/domain/port"
)

// DefaultHistorySize окно графика и таблицы событий
const DefaultHistorySize = 20

// MemoryHistory кольцевой буфер последних событий и счётчики по меткам
type MemoryHistory struct {
	mu     sync.RWMutex
	ring   []entity.ClassificationEvent
	next   int
	full   bool
	counts map[string]int
	total  int
}

// NewMemoryHistory создаёт историю на size событий
func NewMemoryHistory(size int) *MemoryHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &MemoryHistory{
		ring:   make([]entity.ClassificationEvent, size),
		counts: make(map[string]int),
	}
}

// Add записывает событие, вытесняя самое старое
func (h *MemoryHistory) Add(ev entity.ClassificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ring[h.next] = ev
	h.next = (h.next + 1) % len(h.ring)
	if h.next == 0 {
		h.full = true
	}
	h.counts[ev.Label]++
	h.total++
}

// Recent возвращает события от новых к старым
func (h *MemoryHistory) Recent() []entity.ClassificationEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := h.next
	if h.full {
		n = len(h.ring)
	}
	out := make([]entity.ClassificationEvent, 0, n)
	for i := 1; i <= n; i++ {
		idx := (h.next - i + len(h.ring)) % len(h.ring)
		out = append(out, h.ring[idx])
	}
	return out
}

// Counts копия счётчиков по меткам за всю сессию
func (h *MemoryHistory) Counts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.counts)
}

// Total число событий за сессию
func (h *MemoryHistory) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Labels метки, встречавшиеся в сессии, по алфавиту
func (h *MemoryHistory) Labels() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	labels := lo.Keys(h.counts)
	slices.Sort(labels)
	return labels
}

var _ port.EventHistory = (*MemoryHistory)(nil)
