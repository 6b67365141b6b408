// Package mcpsrv provides an extensible MCP server for federated case search.
//
// The server searches cases, evidence, suspects, victims and investigations
// with one query, records every search for analytics and exposes the results
// through builtin tools, prompts and resources. Callers supply the
// collections and may extend the server with their own tools.
//
// # Basic Usage
//
// Load a dataset into memory and serve it:
//
//	entities, err := mcpsrv.LoadDataset("cases.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server, err := mcpsrv.NewServer(entities)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	server, err := mcpsrv.NewServer(
//	    entities,
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myBuilder),
//	)
//
// # Configuration
//
// Configuration comes from environment variables (see internal/config).
// Options override individual settings:
//
//	server, err := mcpsrv.NewServer(
//	    entities,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/casesearch.log"),
//	)
package mcpsrv
