package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().Run(ctx, os.Args); err != nil && ctx.Err() == nil {
		slog.Error("casesearch failed", "error", err)
		os.Exit(1)
	}
}

// newApp builds the root command. Configuration is loaded from environment
// variables (see internal/config); flags override the ones they name.
func newApp() *cli.Command {
	return &cli.Command{
		Name:  "casesearch",
		Usage: "Federated search over cases, evidence, suspects, victims and investigations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Usage:   "JSON or YAML dataset to load",
				Sources: cli.EnvVars("DATA_FILE"),
			},
			&cli.StringFlag{
				Name:    "history-dsn",
				Usage:   "SQLite DSN for search history (empty keeps history in memory)",
				Sources: cli.EnvVars("HISTORY_DSN"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn, error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			analyticsCommand(),
		},
	}
}
