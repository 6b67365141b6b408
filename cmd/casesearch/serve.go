package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the search tools over MCP on stdio",
		Action: func(ctx context.Context, c *cli.Command) error {
			server, err := newServer(c)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting casesearch MCP server on stdio")
			if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}
}
