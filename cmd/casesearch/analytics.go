package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

func analyticsCommand() *cli.Command {
	return &cli.Command{
		Name:  "analytics",
		Usage: "Report search usage from the history store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "Range start, RFC 3339 or YYYY-MM-DD (default: 24h before --to)",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "Range end, RFC 3339 or YYYY-MM-DD (default: now)",
			},
			&cli.BoolFlag{
				Name:  "prune",
				Usage: "Delete history older than HISTORY_RETENTION_DAYS before reporting",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			to := time.Now()
			if s := c.String("to"); s != "" {
				t, err := parseDate(s)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				to = t
			}
			from := to.Add(-24 * time.Hour)
			if s := c.String("from"); s != "" {
				t, err := parseDate(s)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				from = t
			}

			server, err := newServer(c)
			if err != nil {
				return err
			}
			defer server.Close()
			deps := server.Deps()

			if c.Bool("prune") {
				n, err := deps.Scheduler.RunOnce(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.Root().ErrWriter, "pruned %d history records\n", n)
			}

			rep, err := deps.Recorder.Report(ctx, from, to)
			if err != nil {
				return err
			}
			return printJSON(c.Root().Writer, rep)
		},
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
