package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "investigate_query",
		Description: "RECOMMENDED: Work a lead across cases, evidence, suspects, victims and investigations. Start here for guided search, narrowing and record lookup.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "query",
				Description: "What to look for (e.g. 'romance', a case number, a suspect name)",
				Required:    true,
			},
			{
				Name:        "type",
				Description: "Restrict to one result type: case, evidence, suspect, victim or investigation",
				Required:    false,
			},
		},
	}, HandleInvestigateQuery(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "usage_report",
		Description: "Summarize how search has been used over a period: volume, popular queries, latency and cache effectiveness.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "from",
				Description: "Range start, RFC 3339 or YYYY-MM-DD (default: 24h ago)",
				Required:    false,
			},
			{
				Name:        "to",
				Description: "Range end, RFC 3339 or YYYY-MM-DD (default: now)",
				Required:    false,
			},
		},
	}, HandleUsageReport(cfg))
}
