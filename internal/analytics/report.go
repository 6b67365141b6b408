package analytics

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/usestring/casesearch/internal/relevance"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// TopQueriesLimit caps AnalyticsReport.TopQueries.
const TopQueriesLimit = 10

// ErrInvalidRange is returned when a report range ends before it starts.
var ErrInvalidRange = errors.New("report range end is before start")

const dayLayout = "2006-01-02"

// Report aggregates history with from <= timestamp < to.
func Report(ctx context.Context, history store.HistoryStore, from, to time.Time) (*types.AnalyticsReport, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	recs, err := history.FindInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reading search history: %w", err)
	}
	return Summarize(recs, from, to), nil
}

// Report aggregates the recorder's history.
func (r *Recorder) Report(ctx context.Context, from, to time.Time) (*types.AnalyticsReport, error) {
	return Report(ctx, r.history, from, to)
}

type queryGroup struct {
	display string
	count   int
	last    time.Time
}

// Summarize builds a report from recs. Queries are grouped
// case-insensitively and shown in their most recent spelling.
func Summarize(recs []types.SearchHistoryRecord, from, to time.Time) *types.AnalyticsReport {
	rep := &types.AnalyticsReport{
		From:          from,
		To:            to,
		TotalSearches: len(recs),
		TopQueries:    []types.QueryCount{},
		SearchesByDay: []types.DayCount{},
	}
	if len(recs) == 0 {
		return rep
	}

	var totalTime int64
	var hits int
	groups := make(map[string]*queryGroup)
	days := make(map[string]int)

	for _, rec := range recs {
		totalTime += rec.ResponseTime
		if rec.CacheHit {
			hits++
		}
		days[rec.Timestamp.UTC().Format(dayLayout)]++

		key := relevance.Fold(rec.Query)
		g, ok := groups[key]
		if !ok {
			g = &queryGroup{}
			groups[key] = g
		}
		g.count++
		if g.display == "" || !rec.Timestamp.Before(g.last) {
			g.display = rec.Query
			g.last = rec.Timestamp
		}
	}

	rep.AverageResponseTime = float64(totalTime) / float64(len(recs))
	rep.CacheHitRate = float64(hits) / float64(len(recs))

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(groups[b].count, groups[a].count); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, k := range keys[:min(len(keys), TopQueriesLimit)] {
		rep.TopQueries = append(rep.TopQueries, types.QueryCount{Query: groups[k].display, Count: groups[k].count})
	}

	for d, n := range days {
		rep.SearchesByDay = append(rep.SearchesByDay, types.DayCount{Date: d, Count: n})
	}
	slices.SortFunc(rep.SearchesByDay, func(a, b types.DayCount) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return rep
}
