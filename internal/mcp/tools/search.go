package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/casesearch/internal/query"
	"github.com/usestring/casesearch/pkg/types"
)

// SearchInput is the input for casesearch_search.
type SearchInput struct {
	Query             string   `json:"query" jsonschema:"Free text matched case-insensitively as a substring against titles, numbers, names, descriptions and locations"`
	Types             []string `json:"types,omitempty" jsonschema:"Restrict to result types: case, evidence, suspect, victim, investigation"`
	Status            []string `json:"status,omitempty" jsonschema:"Status values to keep (case-insensitive, e.g. OPEN, CLOSED)"`
	Priority          []string `json:"priority,omitempty" jsonschema:"Priorities to keep: LOW, MEDIUM, HIGH, CRITICAL. Applies to cases and investigations only"`
	AssignedOfficerID string   `json:"assigned_officer_id,omitempty" jsonschema:"Assigned officer (cases) or lead officer (investigations)"`
	CaseType          []string `json:"case_type,omitempty" jsonschema:"Case types to keep, e.g. FRAUD. Applies to cases only"`
	From              string   `json:"from,omitempty" jsonschema:"Created on or after, RFC 3339 or YYYY-MM-DD"`
	To                string   `json:"to,omitempty" jsonschema:"Created on or before, RFC 3339 or YYYY-MM-DD"`
	SortField         string   `json:"sort_field,omitempty" jsonschema:"relevance (default), date, priority or status"`
	SortOrder         string   `json:"sort_order,omitempty" jsonschema:"desc (default) or asc"`
	Page              int      `json:"page,omitempty" jsonschema:"1-based page (default: 1)"`
	Limit             int      `json:"limit,omitempty" jsonschema:"Results per page (default: 20, max: 100)"`
	JQ                string   `json:"jq,omitempty" jsonschema:"Optional jq expression applied to the full response, e.g. '.results[].id'. Matches are returned in projection"`
	UserID            string   `json:"user_id,omitempty" jsonschema:"Caller recorded in search history"`
}

// SearchOutput is the output for casesearch_search.
type SearchOutput struct {
	Results          []ResultView `json:"results,omitzero"`
	Total            int          `json:"total"`
	Page             int          `json:"page"`
	Limit            int          `json:"limit"`
	TotalPages       int          `json:"total_pages"`
	SearchTimeMs     int64        `json:"search_time_ms"`
	Suggestions      []string     `json:"suggestions,omitzero"`
	Facets           FacetsView   `json:"facets"`
	Cached           bool         `json:"cached"`
	Partial          []string     `json:"partial,omitzero"`
	Truncated        []string     `json:"truncated,omitzero"`
	Projection       []any        `json:"projection,omitzero"`
	ProjectionErrors []string     `json:"projection_errors,omitzero"`
	Hint             string       `json:"hint,omitempty"`
}

// ToSearchRequest maps tool input onto a search request. Validation happens
// in the service.
func (in SearchInput) ToSearchRequest() (*types.SearchRequest, error) {
	req := &types.SearchRequest{Query: in.Query}

	from, err := parseTime("from", in.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTime("to", in.To)
	if err != nil {
		return nil, err
	}

	f := &types.Filters{
		Status:            in.Status,
		AssignedOfficerID: in.AssignedOfficerID,
		CaseType:          in.CaseType,
	}
	for _, t := range in.Types {
		f.Types = append(f.Types, types.ResultType(strings.ToLower(strings.TrimSpace(t))))
	}
	for _, p := range in.Priority {
		f.Priority = append(f.Priority, types.Priority(strings.ToUpper(strings.TrimSpace(p))))
	}
	if from != nil || to != nil {
		f.DateRange = &types.DateRange{From: from, To: to}
	}
	req.Filters = f

	if in.SortField != "" || in.SortOrder != "" {
		req.Sort = &types.Sort{
			Field: types.SortField(strings.ToLower(in.SortField)),
			Order: types.SortOrder(strings.ToLower(in.SortOrder)),
		}
	}
	if in.Page != 0 || in.Limit != 0 {
		req.Pagination = &types.Pagination{Page: in.Page, Limit: in.Limit}
	}
	return req, nil
}

// ToolSearch runs a federated search.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		// Reject a bad expression before searching.
		var proj *query.Projection
		if input.JQ != "" {
			p, err := query.Compile(input.JQ)
			if err != nil {
				return nil, SearchOutput{}, ErrInvalidInput(err.Error())
			}
			proj = p
		}

		searchReq, err := input.ToSearchRequest()
		if err != nil {
			return nil, SearchOutput{}, err
		}

		resp, err := d.Search.Search(ctx, searchReq, input.UserID)
		if err != nil {
			return nil, SearchOutput{}, WrapSearchError(err)
		}

		out := SearchOutput{
			Total:        resp.Total,
			Page:         resp.Page,
			Limit:        resp.Limit,
			TotalPages:   resp.TotalPages,
			SearchTimeMs: resp.SearchTime,
			Suggestions:  resp.Suggestions,
			Facets:       ToFacetsView(resp.Facets),
			Cached:       resp.Cached,
		}
		for _, r := range resp.Results {
			v, err := ToResultView(r)
			if err != nil {
				return nil, SearchOutput{}, err
			}
			out.Results = append(out.Results, v)
		}
		for _, t := range resp.Partial {
			out.Partial = append(out.Partial, string(t))
		}
		for _, t := range resp.Truncated {
			out.Truncated = append(out.Truncated, string(t))
		}

		if proj != nil {
			res, err := proj.Apply(ctx, resp, query.Options{})
			if err != nil {
				return nil, SearchOutput{}, WrapSearchError(err)
			}
			out.Projection = res.Values
			out.ProjectionErrors = res.Errors
		}

		out.Hint = searchHint(resp, len(out.Partial) > 0)
		return nil, out, nil
	}
}

func searchHint(resp *types.SearchResponse, partial bool) string {
	switch {
	case partial:
		return fmt.Sprintf("Some collections failed (%v); results are incomplete. Retry later for full coverage.", resp.Partial)
	case len(resp.Truncated) > 0:
		return fmt.Sprintf("Too many matches in %v; only the newest were ranked. Narrow with filters or a date range.", resp.Truncated)
	case resp.Total == 0 && len(resp.Suggestions) > 0:
		return fmt.Sprintf("No matches. Earlier searches that contain this query: %s.", strings.Join(resp.Suggestions, ", "))
	case resp.Total == 0:
		return "No matches. Try a shorter query or remove filters."
	case resp.Page < resp.TotalPages:
		return fmt.Sprintf("Showing page %d of %d. Use page=%d for more, or narrow with types/status filters.", resp.Page, resp.TotalPages, resp.Page+1)
	default:
		return "Use casesearch_get_record with a result's type and id for the full record."
	}
}
