package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SuggestInput is the input for casesearch_suggest.
type SuggestInput struct {
	Query string `json:"query" jsonschema:"Partial query; at least 3 characters"`
}

// SuggestOutput is the output for casesearch_suggest.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions,omitzero"`
}

// ToolSuggest returns prior queries containing the input.
func ToolSuggest(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SuggestInput) (*sdkmcp.CallToolResult, SuggestOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SuggestInput) (*sdkmcp.CallToolResult, SuggestOutput, error) {
		q := strings.TrimSpace(input.Query)
		if q == "" {
			return nil, SuggestOutput{}, ErrInvalidInput("query is required")
		}
		return nil, SuggestOutput{Suggestions: d.Search.Suggest(ctx, q)}, nil
	}
}
