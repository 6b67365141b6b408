package search

import (
	"cmp"
	"slices"
	"time"

	"github.com/usestring/casesearch/pkg/types"
)

// Date bucket facet values. Buckets are exclusive: a result counts in the
// narrowest bucket its age fits.
const (
	BucketLast7Days  = "last_7_days"
	BucketLast30Days = "last_30_days"
	BucketLast90Days = "last_90_days"
	BucketOlder      = "older"
)

const day = 24 * time.Hour

// BuildFacets counts results by type, status, priority and creation-date
// bucket relative to now. Results without a status or priority do not
// count in that dimension.
func BuildFacets(results []types.SearchResult, now time.Time) types.Facets {
	byType := map[string]int{}
	byStatus := map[string]int{}
	byPriority := map[string]int{}
	byDate := map[string]int{}

	for _, r := range results {
		byType[string(r.Type)]++
		if s := r.Metadata.Status(); s != "" {
			byStatus[s]++
		}
		if p := r.Metadata.Priority(); p != "" {
			byPriority[string(p)]++
		}
		byDate[dateBucket(now.Sub(r.CreatedAt))]++
	}

	return types.Facets{
		Types:      toFacets(byType),
		Statuses:   toFacets(byStatus),
		Priorities: toFacets(byPriority),
		DateRanges: toFacets(byDate),
	}
}

func dateBucket(age time.Duration) string {
	switch {
	case age < 7*day:
		return BucketLast7Days
	case age < 30*day:
		return BucketLast30Days
	case age < 90*day:
		return BucketLast90Days
	default:
		return BucketOlder
	}
}

// toFacets sorts counts by count desc, then value asc.
func toFacets(counts map[string]int) []types.Facet {
	out := make([]types.Facet, 0, len(counts))
	for v, n := range counts {
		out = append(out, types.Facet{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b types.Facet) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}
