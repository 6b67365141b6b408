package schema

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/usestring/casesearch/pkg/types"
)

// normalize applies semantic checks and defaults to a schema-valid request
// and returns a canonical copy. Filter sets are upper-cased where the
// values are enumerations, de-duplicated and sorted; empty filters collapse
// to nil so equivalent requests normalize identically.
func (v *RequestValidator) normalize(req *types.SearchRequest) (*types.SearchRequest, error) {
	var issues []Issue

	out := &types.SearchRequest{
		Query: norm.NFC.String(strings.TrimSpace(req.Query)),
	}
	if out.Query == "" {
		issues = append(issues, Issue{Field: "query", Message: "must not be empty"})
	}

	if req.Filters != nil {
		f := &types.Filters{
			Types:             sortedSet(req.Filters.Types, func(t types.ResultType) types.ResultType { return t }),
			Status:            sortedSet(req.Filters.Status, canonicalLabel),
			Priority:          sortedSet(req.Filters.Priority, func(p types.Priority) types.Priority { return p }),
			AssignedOfficerID: strings.TrimSpace(req.Filters.AssignedOfficerID),
			CaseType:          sortedSet(req.Filters.CaseType, canonicalLabel),
		}
		for _, t := range f.Types {
			if !t.Valid() {
				issues = append(issues, Issue{Field: "filters.types", Message: "unknown result type " + string(t)})
			}
		}
		if dr := req.Filters.DateRange; dr != nil && (dr.From != nil || dr.To != nil) {
			rng := &types.DateRange{}
			if dr.From != nil {
				from := dr.From.UTC()
				rng.From = &from
			}
			if dr.To != nil {
				to := dr.To.UTC()
				rng.To = &to
			}
			if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
				issues = append(issues, Issue{Field: "filters.dateRange", Message: "from must not be after to"})
			}
			f.DateRange = rng
		}
		if !filtersEmpty(f) {
			out.Filters = f
		}
	}

	out.Sort = &types.Sort{Field: types.SortByRelevance, Order: types.SortDesc}
	if req.Sort != nil {
		if req.Sort.Field != "" {
			out.Sort.Field = req.Sort.Field
		}
		if req.Sort.Order != "" {
			out.Sort.Order = req.Sort.Order
		}
	}

	out.Pagination = &types.Pagination{Page: types.DefaultPage, Limit: v.opts.DefaultLimit}
	if p := req.Pagination; p != nil {
		if p.Page != 0 {
			out.Pagination.Page = p.Page
		}
		if p.Limit != 0 {
			out.Pagination.Limit = p.Limit
		}
	}
	if out.Pagination.Page < 1 || out.Pagination.Page > types.MaxPage {
		issues = append(issues, Issue{Field: "pagination.page", Message: "must be between 1 and " + strconv.Itoa(types.MaxPage)})
	}
	if out.Pagination.Limit < 1 || out.Pagination.Limit > v.opts.MaxLimit {
		issues = append(issues, Issue{Field: "pagination.limit", Message: "must be between 1 and " + strconv.Itoa(v.opts.MaxLimit)})
	}

	if len(issues) > 0 {
		return nil, newValidationError(issues)
	}
	return out, nil
}

func canonicalLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// sortedSet maps, drops empties, de-duplicates and sorts in a new slice.
func sortedSet[T ~string](in []T, canon func(T) T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		if c := canon(v); c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func filtersEmpty(f *types.Filters) bool {
	return len(f.Types) == 0 && f.DateRange == nil && len(f.Status) == 0 &&
		len(f.Priority) == 0 && f.AssignedOfficerID == "" && len(f.CaseType) == 0
}
