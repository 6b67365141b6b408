package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/usestring/casesearch/internal/relevance"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// History is an in-memory HistoryStore. Records are kept in timestamp order.
type History struct {
	mu      sync.RWMutex
	records []types.SearchHistoryRecord
	closed  bool
}

var _ store.HistoryStore = (*History)(nil)

// NewHistory creates an empty history store.
func NewHistory() *History {
	return &History{}
}

// Append adds a record.
func (h *History) Append(ctx context.Context, rec types.SearchHistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return store.ErrClosed
	}

	// Usually appends at the end; out-of-order timestamps are inserted in place.
	i := sort.Search(len(h.records), func(i int) bool {
		return h.records[i].Timestamp.After(rec.Timestamp)
	})
	h.records = append(h.records, types.SearchHistoryRecord{})
	copy(h.records[i+1:], h.records[i:])
	h.records[i] = rec
	return nil
}

// FindRecentByQuery returns distinct prior queries containing text, most
// recent first.
func (h *History) FindRecentByQuery(ctx context.Context, text string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, store.ErrClosed
	}

	needle := relevance.Fold(text)
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		q := h.records[i].Query
		folded := relevance.Fold(q)
		if !strings.Contains(folded, needle) {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, q)
	}
	return out, nil
}

// FindInRange returns records with from <= timestamp < to, oldest first.
func (h *History) FindInRange(ctx context.Context, from, to time.Time) ([]types.SearchHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, store.ErrClosed
	}

	start := sort.Search(len(h.records), func(i int) bool {
		return !h.records[i].Timestamp.Before(from)
	})
	end := sort.Search(len(h.records), func(i int) bool {
		return !h.records[i].Timestamp.Before(to)
	})
	if end < start {
		end = start
	}
	out := make([]types.SearchHistoryRecord, end-start)
	copy(out, h.records[start:end])
	return out, nil
}

// DeleteOlderThan removes records timestamped before cutoff.
func (h *History) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, store.ErrClosed
	}

	n := sort.Search(len(h.records), func(i int) bool {
		return !h.records[i].Timestamp.Before(cutoff)
	})
	h.records = append(h.records[:0:0], h.records[n:]...)
	return n, nil
}

// Len returns the number of stored records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Close marks the store closed. Further calls fail with store.ErrClosed.
func (h *History) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}
