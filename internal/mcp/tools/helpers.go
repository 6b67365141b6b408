// Package tools contains MCP tool implementations for casesearch.
package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/usestring/casesearch/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// ResultView is the tool-facing form of a search result. Timestamps are Unix
// milliseconds.
type ResultView struct {
	Type           string   `json:"type"`
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	RelevanceScore int      `json:"relevance_score"`
	Highlights     []string `json:"highlights,omitzero"`
	Metadata       any      `json:"metadata,omitempty"`
	CreatedAtMs    int64    `json:"created_at_ms"`
	UpdatedAtMs    int64    `json:"updated_at_ms"`
}

// FacetView is one facet bucket.
type FacetView struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetsView groups facet buckets by dimension.
type FacetsView struct {
	Types      []FacetView `json:"types,omitzero"`
	Statuses   []FacetView `json:"statuses,omitzero"`
	Priorities []FacetView `json:"priorities,omitzero"`
	DateRanges []FacetView `json:"date_ranges,omitzero"`
}

// ToResultView converts a search result. Metadata is flattened to the set
// variant.
func ToResultView(r types.SearchResult) (ResultView, error) {
	meta, err := types.ToAny(metadataVariant(r.Metadata))
	if err != nil {
		return ResultView{}, fmt.Errorf("converting metadata for %s %s: %w", r.Type, r.ID, err)
	}
	return ResultView{
		Type:           string(r.Type),
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		RelevanceScore: r.RelevanceScore,
		Highlights:     r.Highlights,
		Metadata:       meta,
		CreatedAtMs:    r.CreatedAt.UnixMilli(),
		UpdatedAtMs:    r.UpdatedAt.UnixMilli(),
	}, nil
}

func metadataVariant(m types.Metadata) any {
	switch {
	case m.Case != nil:
		return m.Case
	case m.Evidence != nil:
		return m.Evidence
	case m.Suspect != nil:
		return m.Suspect
	case m.Victim != nil:
		return m.Victim
	case m.Investigation != nil:
		return m.Investigation
	}
	return nil
}

// ToFacetsView converts response facets.
func ToFacetsView(f types.Facets) FacetsView {
	conv := func(in []types.Facet) []FacetView {
		out := make([]FacetView, len(in))
		for i, b := range in {
			out[i] = FacetView{Value: b.Value, Count: b.Count}
		}
		return out
	}
	return FacetsView{
		Types:      conv(f.Types),
		Statuses:   conv(f.Statuses),
		Priorities: conv(f.Priorities),
		DateRanges: conv(f.DateRanges),
	}
}

// parseTime accepts RFC 3339 timestamps or YYYY-MM-DD dates (UTC midnight).
func parseTime(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidInput(fmt.Sprintf("%s: expected RFC 3339 timestamp or YYYY-MM-DD date, got %q", field, s))
}
