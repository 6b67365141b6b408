package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleUsageReport guides an analytics summary.
func HandleUsageReport(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments
		from := strings.TrimSpace(args["from"])
		to := strings.TrimSpace(args["to"])

		var sb strings.Builder

		sb.WriteString("# Search Usage Report\n\n")
		sb.WriteString("Summarize how search was used. Keep it short; the reader wants numbers and one or two observations.\n\n")

		sb.WriteString("## Steps\n\n")
		sb.WriteString("```\n")
		switch {
		case from != "" && to != "":
			fmt.Fprintf(&sb, "casesearch_analytics(from=%q, to=%q)\n", from, to)
		case from != "":
			fmt.Fprintf(&sb, "casesearch_analytics(from=%q)\n", from)
		case to != "":
			fmt.Fprintf(&sb, "casesearch_analytics(to=%q)\n", to)
		default:
			sb.WriteString("casesearch_analytics()\n")
		}
		sb.WriteString("```\n\n")

		sb.WriteString("## Reading the Numbers\n\n")
		sb.WriteString("- `cache_hit_rate` near 0 with repeated `top_queries` means the cache TTL is too short\n")
		sb.WriteString("- `average_response_time_ms` includes cache hits; a high rate lowers it\n")
		sb.WriteString("- `searches_by_day` uses UTC days\n")
		sb.WriteString("- `top_queries` are grouped case-insensitively and capped at 10\n\n")

		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("1. **Volume**: total searches and the busiest day\n")
		sb.WriteString("2. **Top Queries**: the first five with counts\n")
		sb.WriteString("3. **Performance**: average response time and cache hit rate\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for summarizing search usage",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
