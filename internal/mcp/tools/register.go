package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "casesearch_search",
		Description: "Search cases, evidence, suspects, victims and investigations with one query. Returns {results: [{type, id, title, relevance_score, highlights, metadata}], total, page, total_pages, facets, suggestions, partial, hint}. Filters: types, status, priority, case_type, assigned_officer_id, from/to. Sort by relevance (default), date, priority or status. Set jq to project the response, e.g. '.results[] | select(.type==\"case\") | .id'. partial lists collections that failed or timed out; their results are missing.",
	}, ToolSearch(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "casesearch_suggest",
		Description: "Suggest earlier queries that contain the given text. Needs at least 3 characters; shorter input returns no suggestions.",
	}, ToolSuggest(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "casesearch_analytics",
		Description: "Report search usage over a time range: total_searches, average_response_time_ms, top_queries (up to 10), searches_by_day and cache_hit_rate. Defaults to the last 24 hours.",
	}, ToolAnalytics(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "casesearch_get_record",
		Description: "Get the full record for a search result. Requires type and id from casesearch_search.",
	}, ToolGetRecord(d))
}
