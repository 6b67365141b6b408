package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleInvestigateQuery guides a search from a first query down to full
// records.
func HandleInvestigateQuery(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		query := strings.TrimSpace(req.Params.Arguments["query"])
		typ := strings.ToLower(strings.TrimSpace(req.Params.Arguments["type"]))
		if query == "" {
			return nil, fmt.Errorf("query argument is required")
		}

		var sb strings.Builder

		sb.WriteString("# Investigate: " + query + "\n\n")
		sb.WriteString("You are assisting an investigator. Find every record related to the lead below, ")
		sb.WriteString("narrow to what matters and report it with record IDs so the investigator can follow up.\n\n")

		sb.WriteString("## How Search Works\n\n")
		sb.WriteString("- One query searches all five collections at once: cases, evidence, suspects, victims, investigations\n")
		sb.WriteString("- Matching is a case-insensitive substring match; `romance` matches `romance_chat_log.txt`\n")
		sb.WriteString("- `relevance_score` ranks title/number/name matches above description matches\n")
		fmt.Fprintf(&sb, "- Pages hold %d results by default, up to %d with `limit`\n", cfg.DefaultLimit, cfg.MaxLimit)
		sb.WriteString("- `partial` lists collections that failed; say so in your answer if it is set\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Search broadly** and read `facets` to see where matches are\n")
		sb.WriteString("2. **Narrow** with `types`, `status`, `priority` or `from`/`to` when results are many\n")
		sb.WriteString("3. **Open records** that look relevant with casesearch_get_record\n")
		sb.WriteString("4. **Follow links**: evidence, suspects, victims and investigations carry `caseId`; search for it\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		if typ != "" {
			fmt.Fprintf(&sb, "casesearch_search(query=%q, types=[%q])\n", query, typ)
		} else {
			fmt.Fprintf(&sb, "casesearch_search(query=%q)\n", query)
		}
		sb.WriteString("casesearch_search(query=\"...\", jq=\".results[] | {type, id, title}\")\n")
		sb.WriteString("casesearch_get_record(type=\"case\", id=\"<id from results>\")\n")
		sb.WriteString("```\n\n")

		sb.WriteString("## If Things Go Wrong\n\n")
		fmt.Fprintf(&sb, "- **No matches?** Check `suggestions`, or call casesearch_suggest(query=%q) for earlier queries\n", query)
		sb.WriteString("- **TIMEOUT or SEARCH_FAILED?** Retry once; if it persists report which collections were affected\n")
		sb.WriteString("- **INVALID_INPUT?** The message names the offending field\n\n")

		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("1. **Summary**: how many records of each type matched\n")
		sb.WriteString("2. **Key Records**: type, id, title and why it matters\n")
		sb.WriteString("3. **Connections**: records that share a case\n")
		sb.WriteString("4. **Gaps**: partial results, or leads worth another search\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for investigating a lead across all record types",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
