package search

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/usestring/casesearch/internal/fanout"
	"github.com/usestring/casesearch/pkg/types"
)

// Merged is the globally sorted, pre-pagination result of a fan-out.
type Merged struct {
	Results []types.SearchResult
	Total     int
	Partial   []types.ResultType // Executors that failed
	Truncated []types.ResultType // Executors that hit the fetch cap
}

// Aggregator fans a request out to the executors and merges their batches.
type Aggregator struct {
	executors []Executor
	timeout   time.Duration
}

// NewAggregator creates an aggregator over executors, merged in the given
// order. Each executor runs under its own timeout.
func NewAggregator(executors []Executor, timeout time.Duration) *Aggregator {
	return &Aggregator{executors: executors, timeout: timeout}
}

// Run executes every selected executor concurrently and waits for all of
// them. A failing executor contributes nothing and is listed in Partial.
// When every executor that ran failed, Run returns a *SearchError.
func (a *Aggregator) Run(ctx context.Context, req *types.SearchRequest) (*Merged, error) {
	selected := a.selectExecutors(req.Filters)
	merged := &Merged{Results: []types.SearchResult{}}
	if len(selected) == 0 {
		return merged, nil
	}

	tasks := make([]fanout.Task[Batch], len(selected))
	for i, ex := range selected {
		tasks[i] = func(ctx context.Context) (Batch, error) {
			return ex.Search(ctx, req)
		}
	}
	outcomes := fanout.SettleAll(ctx, a.timeout, tasks...)

	var errs []error
	for i, o := range outcomes {
		typ := selected[i].Type()
		if o.Err != nil {
			slog.Warn("entity search failed",
				slog.String("type", string(typ)),
				slog.Int64("elapsed_ms", o.Elapsed.Milliseconds()),
				slog.String("error", o.Err.Error()),
			)
			merged.Partial = append(merged.Partial, typ)
			errs = append(errs, o.Err)
			continue
		}
		merged.Results = append(merged.Results, o.Value.Results...)
		merged.Total += o.Value.Total
		if o.Value.Truncated {
			merged.Truncated = append(merged.Truncated, typ)
		}
	}

	if len(errs) == len(selected) {
		return nil, &SearchError{Failed: merged.Partial, Cause: errors.Join(errs...)}
	}

	SortResults(merged.Results, req.Sort)
	return merged, nil
}

// selectExecutors keeps executors whose type passes the types filter,
// preserving merge order.
func (a *Aggregator) selectExecutors(f *types.Filters) []Executor {
	if f == nil || len(f.Types) == 0 {
		return a.executors
	}
	out := make([]Executor, 0, len(a.executors))
	for _, ex := range a.executors {
		if slices.Contains(f.Types, ex.Type()) {
			out = append(out, ex)
		}
	}
	return out
}

// SortResults orders results in place by the requested field and direction.
// The sort is stable, so ties keep merge order.
func SortResults(results []types.SearchResult, s *types.Sort) {
	field, order := types.SortByRelevance, types.SortDesc
	if s != nil {
		if s.Field != "" {
			field = s.Field
		}
		if s.Order != "" {
			order = s.Order
		}
	}

	var compare func(a, b types.SearchResult) int
	switch field {
	case types.SortByDate:
		compare = func(a, b types.SearchResult) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case types.SortByPriority:
		compare = func(a, b types.SearchResult) int {
			return cmp.Compare(a.Metadata.Priority().Rank(), b.Metadata.Priority().Rank())
		}
	case types.SortByStatus:
		compare = func(a, b types.SearchResult) int {
			return strings.Compare(strings.ToUpper(a.Metadata.Status()), strings.ToUpper(b.Metadata.Status()))
		}
	default:
		compare = func(a, b types.SearchResult) int { return cmp.Compare(a.RelevanceScore, b.RelevanceScore) }
	}

	if order == types.SortDesc {
		asc := compare
		compare = func(a, b types.SearchResult) int { return asc(b, a) }
	}
	slices.SortStableFunc(results, compare)
}

// Paginate returns the 1-based page of limit results. Pages past the end
// are empty.
func Paginate(results []types.SearchResult, page, limit int) []types.SearchResult {
	if limit <= 0 || page < 1 {
		return []types.SearchResult{}
	}
	pages := len(results) / limit
	if len(results)%limit != 0 {
		pages++
	}
	// Compare page counts before multiplying so huge pages cannot overflow.
	if page-1 >= pages {
		return []types.SearchResult{}
	}
	start := (page - 1) * limit
	end := min(start+limit, len(results))
	out := make([]types.SearchResult, end-start)
	copy(out, results[start:end])
	return out
}

// TotalPages returns ceil(total/limit), or 0 when there are no results.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
