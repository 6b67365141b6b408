// Package prompts contains MCP prompt implementations for casesearch.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}
