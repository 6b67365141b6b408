// Package search implements federated search over the case record
// collections: per-entity executors, the aggregator that merges and ranks
// their results, facets, suggestions and the cached Service entry point.
package search

import (
	"context"
	"fmt"

	"github.com/usestring/casesearch/internal/relevance"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// Batch is one executor's contribution to a search.
type Batch struct {
	Results   []types.SearchResult
	Total     int  // Matches returned, never more than len(Results)
	Truncated bool // The store held more matches than the fetch cap
}

// Executor searches one record collection.
type Executor interface {
	Type() types.ResultType
	Search(ctx context.Context, req *types.SearchRequest) (Batch, error)
}

// FilterSupport flags which structured filters apply to a collection.
// Filters a collection does not support are ignored for it.
type FilterSupport struct {
	Status   bool
	Priority bool
	Officer  bool
	CaseType bool
	Date     bool
}

// entityExecutor adapts an EntityStore to the Executor contract.
type entityExecutor[T store.Record] struct {
	typ        types.ResultType
	store      store.EntityStore[T]
	supports   FilterSupport
	convert    func(T) types.SearchResult
	maxResults int
}

func (e *entityExecutor[T]) Type() types.ResultType { return e.typ }

// Search fetches every match up to maxResults from offset 0. Pagination is
// applied once, after the merge. Matches beyond the cap are not counted, so
// totals, pages and facets all describe the same result set.
func (e *entityExecutor[T]) Search(ctx context.Context, req *types.SearchRequest) (Batch, error) {
	recs, total, err := e.store.FindMatching(ctx, e.predicate(req), store.NewestFirst, e.maxResults, 0)
	if err != nil {
		return Batch{}, fmt.Errorf("%s search: %w", e.typ, err)
	}

	results := make([]types.SearchResult, 0, len(recs))
	for _, rec := range recs {
		fields := rec.SearchFields()
		res := e.convert(rec)
		res.Type = e.typ
		res.ID = rec.RecordKey()
		res.RelevanceScore = relevance.Score(req.Query, fields)
		res.Highlights = relevance.Highlight(req.Query, fields)
		results = append(results, res)
	}
	return Batch{Results: results, Total: len(results), Truncated: total > len(results)}, nil
}

func (e *entityExecutor[T]) predicate(req *types.SearchRequest) store.Predicate {
	p := store.Predicate{Text: req.Query}
	f := req.Filters
	if f == nil {
		return p
	}
	if e.supports.Status {
		p.Statuses = f.Status
	}
	if e.supports.Priority {
		p.Priorities = f.Priority
	}
	if e.supports.Officer {
		p.OfficerID = f.AssignedOfficerID
	}
	if e.supports.CaseType {
		p.CaseTypes = f.CaseType
	}
	if e.supports.Date && f.DateRange != nil {
		p.CreatedFrom = f.DateRange.From
		p.CreatedTo = f.DateRange.To
	}
	return p
}
