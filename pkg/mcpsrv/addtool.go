package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/casesearch/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking that the zero
// value of Out satisfies the output schema the SDK infers for it. A nil
// slice without omitzero marshals to null and would fail every call, so
// AddTool panics at registration instead.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
