package tools

import (
	"github.com/usestring/casesearch/internal/analytics"
	"github.com/usestring/casesearch/internal/clock"
	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/internal/search"
	"github.com/usestring/casesearch/internal/store"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config   *config.Config
	Search   *search.Service
	Entities store.Entities
	Recorder *analytics.Recorder
	Clock    clock.Clock
}

func (d *Deps) now() clock.Clock {
	if d.Clock == nil {
		return clock.System{}
	}
	return d.Clock
}
