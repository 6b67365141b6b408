package mcpsrv

import (
	"github.com/usestring/casesearch/internal/analytics"
	"github.com/usestring/casesearch/internal/cache"
	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/internal/search"
	"github.com/usestring/casesearch/internal/store"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config    *config.Config
	Search    *search.Service
	Entities  store.Entities
	History   store.HistoryStore
	Cache     *cache.ResponseCache
	Recorder  *analytics.Recorder
	Scheduler *analytics.Scheduler
}
