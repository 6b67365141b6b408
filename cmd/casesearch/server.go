package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/pkg/mcpsrv"
)

// newServer wires a server from the environment and the global flags.
func newServer(c *cli.Command, opts ...mcpsrv.Option) (*mcpsrv.Server, error) {
	cfg := config.Load()
	if c.IsSet("data") {
		cfg.DataFile = c.String("data")
	}
	if c.IsSet("history-dsn") {
		cfg.HistoryDSN = c.String("history-dsn")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	entities, err := mcpsrv.LoadDataset(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return mcpsrv.NewServer(entities, append([]mcpsrv.Option{mcpsrv.WithConfig(cfg)}, opts...)...)
}
