// Package analytics records search history and aggregates it into reports.
package analytics

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// Recorder appends one history record per search. Write failures are logged
// and counted, never returned.
type Recorder struct {
	history  store.HistoryStore
	timeout  time.Duration
	failures atomic.Int64
}

// NewRecorder creates a recorder writing to history. Each write is bounded
// by timeout (0 means no bound).
func NewRecorder(history store.HistoryStore, timeout time.Duration) *Recorder {
	return &Recorder{history: history, timeout: timeout}
}

// Record appends rec, assigning an ID when it has none. The write outlives
// cancellation of ctx so an abandoned request is still recorded.
func (r *Recorder) Record(ctx context.Context, rec types.SearchHistoryRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	wctx := context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(wctx, r.timeout)
		defer cancel()
	}

	if err := r.history.Append(wctx, rec); err != nil {
		r.failures.Add(1)
		slog.Warn("analytics write failed",
			slog.String("query", rec.Query),
			slog.String("error", err.Error()),
		)
	}
}

// Failures returns how many writes have failed.
func (r *Recorder) Failures() int64 {
	return r.failures.Load()
}

// History returns the underlying store.
func (r *Recorder) History() store.HistoryStore {
	return r.history
}
