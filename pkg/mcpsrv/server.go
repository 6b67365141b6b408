package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/casesearch/internal/analytics"
	"github.com/usestring/casesearch/internal/cache"
	"github.com/usestring/casesearch/internal/clock"
	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/internal/logging"
	"github.com/usestring/casesearch/internal/mcp"
	"github.com/usestring/casesearch/internal/mcp/tools"
	"github.com/usestring/casesearch/internal/search"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/internal/store/memory"
	"github.com/usestring/casesearch/internal/store/sqlite"
)

// Server is the casesearch MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal    *mcp.Server
	deps        *Deps
	schedule    string
	ownsHistory bool
	logCleanup  func() error
}

// NewServer creates a new MCP server with builtin search tools over the
// given collections. Nil collections are skipped by search.
//
// History goes to SQLite when HISTORY_DSN is set, otherwise to memory,
// unless WithHistory supplies a store.
func NewServer(entities store.Entities, opts ...Option) (*Server, error) {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Load()
	}
	if cfg.clock == nil {
		cfg.clock = clock.System{}
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	history := cfg.history
	ownsHistory := false
	if history == nil {
		history, err = openHistory(cfg.config.HistoryDSN)
		if err != nil {
			_ = logCleanup()
			return nil, err
		}
		ownsHistory = true
	}

	closeOnErr := func(err error) (*Server, error) {
		if ownsHistory {
			_ = history.Close()
		}
		_ = logCleanup()
		return nil, err
	}

	responseCache, err := cache.New(cfg.config.CacheMaxItems, cfg.config.CacheTTL, cfg.clock)
	if err != nil {
		return closeOnErr(fmt.Errorf("failed to create response cache: %w", err))
	}
	recorder := analytics.NewRecorder(history, cfg.config.AnalyticsWriteTimeout)

	svc, err := search.New(search.Deps{
		Config:   cfg.config,
		Entities: entities,
		History:  history,
		Cache:    responseCache,
		Recorder: recorder,
		Clock:    cfg.clock,
	})
	if err != nil {
		return closeOnErr(fmt.Errorf("failed to create search service: %w", err))
	}

	deps := &Deps{
		Config:    cfg.config,
		Search:    svc,
		Entities:  entities,
		History:   history,
		Cache:     responseCache,
		Recorder:  recorder,
		Scheduler: analytics.NewScheduler(recorder, cfg.clock, cfg.config.HistoryRetention()),
	}
	toolDeps := &tools.Deps{
		Config:   cfg.config,
		Search:   svc,
		Entities: entities,
		Recorder: recorder,
		Clock:    cfg.clock,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return closeOnErr(fmt.Errorf("failed to create server: %w", err))
	}

	return &Server{
		internal:    internal,
		deps:        deps,
		schedule:    cfg.config.ReportSchedule,
		ownsHistory: ownsHistory,
		logCleanup:  logCleanup,
	}, nil
}

func openHistory(dsn string) (store.HistoryStore, error) {
	if dsn == "" {
		return memory.NewHistory(), nil
	}
	h, err := sqlite.Open(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	slog.Info("search history persisted", slog.String("dsn", dsn))
	return h, nil
}

// Run starts the report scheduler and serves MCP over stdio until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.deps.Scheduler.Start(s.schedule); err != nil {
		return fmt.Errorf("failed to start report scheduler: %w", err)
	}
	defer s.deps.Scheduler.Stop()
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	s.deps.Scheduler.Stop()

	var errs []error
	if s.ownsHistory {
		errs = append(errs, s.deps.History.Close())
	}
	if s.logCleanup != nil {
		errs = append(errs, s.logCleanup())
	}
	return errors.Join(errs...)
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
