package types

import "time"

// SortField selects the global ordering of merged results.
type SortField string

// Sort fields.
const (
	SortByRelevance SortField = "relevance"
	SortByDate      SortField = "date"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Request defaults applied by the validator.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 1_000_000
)

// SearchRequest contains parameters for a federated search.
type SearchRequest struct {
	Query      string      `json:"query"`                // Free text, case-insensitive substring match
	Filters    *Filters    `json:"filters,omitempty"`    // Optional structured filters
	Sort       *Sort       `json:"sort,omitempty"`       // Default relevance/desc
	Pagination *Pagination `json:"pagination,omitempty"` // Default page 1, limit 20
}

// Filters contains structured filter criteria. Filters that a collection
// does not carry are ignored for that collection.
type Filters struct {
	Types             []ResultType `json:"types,omitempty"`
	DateRange         *DateRange   `json:"dateRange,omitempty"`
	Status            []string     `json:"status,omitempty"`
	Priority          []Priority   `json:"priority,omitempty"`
	AssignedOfficerID string       `json:"assignedOfficerId,omitempty"`
	CaseType          []string     `json:"caseType,omitempty"`
}

// DateRange bounds record creation time, inclusive on both ends.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Sort selects field and direction.
type Sort struct {
	Field SortField `json:"field,omitempty"`
	Order SortOrder `json:"order,omitempty"`
}

// Pagination selects a 1-based page of limit results.
type Pagination struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// SearchResult is one record from any collection. Metadata holds exactly
// one variant, matching Type.
type SearchResult struct {
	Type           ResultType `json:"type"`
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	RelevanceScore int        `json:"relevanceScore"`
	Highlights     []string   `json:"highlights"`
	Metadata       Metadata   `json:"metadata"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SearchResponse contains one page of merged results.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	Limit       int            `json:"limit"`
	TotalPages  int            `json:"totalPages"`
	SearchTime  int64          `json:"searchTime"` // Milliseconds
	Suggestions []string       `json:"suggestions"`
	Facets      Facets         `json:"facets"`
	Cached      bool           `json:"cached"`
	Partial     []ResultType   `json:"partial,omitempty"`   // Collections whose search failed
	Truncated   []ResultType   `json:"truncated,omitempty"` // Collections with more matches than were fetched
}

// Clone returns a deep copy of r. Nothing reachable from the copy is shared
// with r.
func (r *SearchResponse) Clone() *SearchResponse {
	out := *r
	out.Results = make([]SearchResult, len(r.Results))
	for i, res := range r.Results {
		out.Results[i] = res.Clone()
	}
	out.Suggestions = append([]string{}, r.Suggestions...)
	out.Partial = cloneTypes(r.Partial)
	out.Truncated = cloneTypes(r.Truncated)
	out.Facets = r.Facets.Clone()
	return &out
}

// Clone returns a copy of r with its own highlights and metadata.
func (r SearchResult) Clone() SearchResult {
	if r.Highlights != nil {
		r.Highlights = append([]string{}, r.Highlights...)
	}
	r.Metadata = r.Metadata.Clone()
	return r
}

func cloneTypes(in []ResultType) []ResultType {
	if len(in) == 0 {
		return nil
	}
	return append([]ResultType(nil), in...)
}

// Facet is a count for one value of a dimension.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets breaks the pre-pagination result set down by dimension.
type Facets struct {
	Types      []Facet `json:"types"`
	Statuses   []Facet `json:"statuses"`
	Priorities []Facet `json:"priorities"`
	DateRanges []Facet `json:"dateRanges"`
}

// Clone returns a deep copy of f.
func (f Facets) Clone() Facets {
	return Facets{
		Types:      cloneFacets(f.Types),
		Statuses:   cloneFacets(f.Statuses),
		Priorities: cloneFacets(f.Priorities),
		DateRanges: cloneFacets(f.DateRanges),
	}
}

func cloneFacets(in []Facet) []Facet {
	out := make([]Facet, len(in))
	copy(out, in)
	return out
}
