package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/usestring/casesearch/internal/cache"
	"github.com/usestring/casesearch/internal/clock"
	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/internal/schema"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// ResponseCache stores full responses by canonical request key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*types.SearchResponse, bool, error)
	Put(ctx context.Context, key string, resp *types.SearchResponse) error
}

// Recorder receives one history record per produced response. It must not
// fail the search.
type Recorder interface {
	Record(ctx context.Context, rec types.SearchHistoryRecord)
}

// Deps are the collaborators of a Service. Cache and Recorder are optional.
type Deps struct {
	Config    *config.Config
	Entities  store.Entities
	History   store.HistoryStore
	Cache     ResponseCache
	Recorder  Recorder
	Clock     clock.Clock
	Executors []Executor // Overrides the executors built from Entities
}

// Service is the federated search entry point.
type Service struct {
	validator  *schema.RequestValidator
	aggregator *Aggregator
	suggester  *Suggester
	cache      ResponseCache
	recorder   Recorder
	clock      clock.Clock

	// flight collapses concurrent identical cache misses.
	flight singleflight.Group
}

// New wires a Service from d.
func New(d Deps) (*Service, error) {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Load()
	}
	clk := d.Clock
	if clk == nil {
		clk = clock.System{}
	}

	validator, err := schema.NewRequestValidator(schema.Options{
		DefaultLimit: cfg.DefaultSearchLimit,
		MaxLimit:     cfg.MaxSearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("building request validator: %w", err)
	}

	executors := d.Executors
	if executors == nil {
		executors = NewExecutors(d.Entities, cfg.MaxResultsPerEntity)
	}

	return &Service{
		validator:  validator,
		aggregator: NewAggregator(executors, cfg.ExecutorTimeout),
		suggester:  NewSuggester(d.History, cfg.SuggestionMinChars, cfg.MaxSuggestions),
		cache:      d.Cache,
		recorder:   d.Recorder,
		clock:      clk,
	}, nil
}

// Validator returns the request validator the service uses.
func (s *Service) Validator() *schema.RequestValidator {
	return s.validator
}

// Search validates req, serves it from cache when fresh, otherwise runs the
// federated search and caches the response. Every produced response is
// recorded for analytics. Errors are *schema.ValidationError or
// *SearchError.
func (s *Service) Search(ctx context.Context, req *types.SearchRequest, userID string) (*types.SearchResponse, error) {
	start := s.clock.Now()

	valid, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, valid, userID, start)
}

// SearchJSON is Search for a raw JSON request body.
func (s *Service) SearchJSON(ctx context.Context, data []byte, userID string) (*types.SearchResponse, error) {
	start := s.clock.Now()

	valid, err := s.validator.ValidateJSON(data)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, valid, userID, start)
}

// Suggest returns prior queries containing query.
func (s *Service) Suggest(ctx context.Context, query string) []string {
	return s.suggester.Suggest(ctx, query)
}

func (s *Service) search(ctx context.Context, req *types.SearchRequest, userID string, start time.Time) (*types.SearchResponse, error) {
	key, err := cache.Key(req)
	if err != nil {
		slog.Warn("cache key failed", slog.String("error", err.Error()))
		key = ""
	}

	resp, hit := s.lookup(ctx, key)
	if !hit {
		resp, err = s.execute(ctx, req, key)
		if err != nil {
			return nil, err
		}
	}

	resp.SearchTime = s.clock.Now().Sub(start).Milliseconds()

	if s.recorder != nil {
		s.recorder.Record(ctx, types.SearchHistoryRecord{
			UserID:       userID,
			Query:        req.Query,
			ResultsCount: resp.Total,
			ResponseTime: resp.SearchTime,
			CacheHit:     hit,
			Timestamp:    s.clock.Now(),
		})
	}

	slog.Debug("search completed",
		slog.String("query", req.Query),
		slog.Int("total", resp.Total),
		slog.Bool("cache_hit", hit),
		slog.Int64("search_time_ms", resp.SearchTime),
	)
	return resp, nil
}

// lookup returns a fresh cached copy. Cache errors are logged and treated as
// a miss.
func (s *Service) lookup(ctx context.Context, key string) (*types.SearchResponse, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	resp, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	resp.Cached = true
	return resp, true
}

// execute runs the live search once per key among concurrent callers and
// returns a private copy to each. The shared run ignores the cancellation of
// whichever caller started it and is bounded by the executor timeout; each
// caller stops waiting when its own context ends.
func (s *Service) execute(ctx context.Context, req *types.SearchRequest, key string) (*types.SearchResponse, error) {
	if key == "" {
		return s.run(ctx, req, key)
	}
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.run(context.WithoutCancel(ctx), req, key)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for search: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*types.SearchResponse).Clone(), nil
	}
}

func (s *Service) run(ctx context.Context, req *types.SearchRequest, key string) (*types.SearchResponse, error) {
	merged, err := s.aggregator.Run(ctx, req)
	if err != nil {
		var serr *SearchError
		if errors.As(err, &serr) {
			slog.Error("search failed",
				slog.String("query", req.Query),
				slog.String("error", serr.Cause.Error()),
			)
		}
		return nil, err
	}

	page, limit := req.Pagination.Page, req.Pagination.Limit
	resp := &types.SearchResponse{
		Results:     Paginate(merged.Results, page, limit),
		Total:       merged.Total,
		Page:        page,
		Limit:       limit,
		TotalPages:  TotalPages(merged.Total, limit),
		Suggestions: s.suggester.Suggest(ctx, req.Query),
		Facets:      BuildFacets(merged.Results, s.clock.Now()),
		Partial:     merged.Partial,
		Truncated:   merged.Truncated,
	}

	// Partial responses are never cached.
	if s.cache != nil && key != "" && len(resp.Partial) == 0 {
		if err := s.cache.Put(ctx, key, resp); err != nil {
			slog.Warn("cache write failed", slog.String("error", err.Error()))
		}
	}
	return resp, nil
}
