package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/usestring/casesearch/internal/clock"
)

// ReportWindow is the span covered by each scheduled report.
const ReportWindow = 24 * time.Hour

const runTimeout = 5 * time.Minute

// Scheduler periodically logs an analytics report and prunes history older
// than the retention window.
type Scheduler struct {
	recorder  *Recorder
	clock     clock.Clock
	retention time.Duration
	cron      *cron.Cron

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler. A zero retention disables pruning.
func NewScheduler(recorder *Recorder, clk clock.Clock, retention time.Duration) *Scheduler {
	if clk == nil {
		clk = clock.System{}
	}
	return &Scheduler{
		recorder:  recorder,
		clock:     clk,
		retention: retention,
		cron:      cron.New(),
	}
}

// Start schedules runs on the standard five-field cron spec (descriptors
// such as "@hourly" are accepted). An empty spec leaves the scheduler idle.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.started = true

	slog.Info("analytics scheduler started", slog.String("schedule", spec))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.started = false
	slog.Info("analytics scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("scheduled analytics run failed", slog.String("error", err.Error()))
	}
}

// RunOnce logs a report over the last ReportWindow and applies retention.
// It returns how many history records were pruned.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	now := s.clock.Now()

	rep, err := s.recorder.Report(ctx, now.Add(-ReportWindow), now)
	if err != nil {
		return 0, err
	}
	attrs := []any{
		slog.Int("total_searches", rep.TotalSearches),
		slog.Float64("avg_response_ms", rep.AverageResponseTime),
		slog.Float64("cache_hit_rate", rep.CacheHitRate),
	}
	if len(rep.TopQueries) > 0 {
		attrs = append(attrs, slog.String("top_query", rep.TopQueries[0].Query))
	}
	slog.Info("search analytics", attrs...)

	if s.retention <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-s.retention)
	n, err := s.recorder.History().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning search history: %w", err)
	}
	if n > 0 {
		slog.Info("pruned search history",
			slog.Int("deleted", n),
			slog.Time("cutoff", cutoff),
		)
	}
	return n, nil
}
