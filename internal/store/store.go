// Package store defines the record-store contracts the search core consumes.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/usestring/casesearch/internal/relevance"
	"github.com/usestring/casesearch/pkg/types"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store closed")

// Record is implemented by every searchable entity.
type Record interface {
	RecordKey() string
	SearchFields() []string
	FilterAttributes() types.Attributes
	CreatedTime() time.Time
}

// Predicate selects records. A record matches when any search field contains
// Text (case-insensitive) and every non-empty filter holds. Enumerated
// filters compare upper-cased values, OfficerID compares exactly and the
// created range is inclusive.
type Predicate struct {
	Text        string
	Statuses    []string
	Priorities  []types.Priority
	OfficerID   string
	CaseTypes   []string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Matches evaluates p against r without any index.
func (p Predicate) Matches(r Record) bool {
	return p.MatchesText(r) && p.MatchesFilters(r)
}

// MatchesText reports whether any search field of r contains p.Text.
func (p Predicate) MatchesText(r Record) bool {
	if p.Text == "" {
		return true
	}
	for _, f := range r.SearchFields() {
		if relevance.Contains(f, p.Text) {
			return true
		}
	}
	return false
}

// MatchesFilters reports whether r satisfies every structured filter in p.
func (p Predicate) MatchesFilters(r Record) bool {
	attrs := r.FilterAttributes()
	if len(p.Statuses) > 0 && !slices.Contains(p.Statuses, strings.ToUpper(attrs.Status)) {
		return false
	}
	if len(p.Priorities) > 0 && !slices.Contains(p.Priorities, types.Priority(strings.ToUpper(string(attrs.Priority)))) {
		return false
	}
	if p.OfficerID != "" && attrs.AssignedOfficerID != p.OfficerID {
		return false
	}
	if len(p.CaseTypes) > 0 && !slices.Contains(p.CaseTypes, strings.ToUpper(attrs.CaseType)) {
		return false
	}
	return p.MatchesCreated(r.CreatedTime())
}

// MatchesCreated reports whether t falls inside the inclusive created range.
func (p Predicate) MatchesCreated(t time.Time) bool {
	if p.CreatedFrom != nil && t.Before(*p.CreatedFrom) {
		return false
	}
	if p.CreatedTo != nil && t.After(*p.CreatedTo) {
		return false
	}
	return true
}

// OrderBy is the order in which a store returns matches.
type OrderBy int

const (
	NewestFirst OrderBy = iota
	OldestFirst
)

// Less reports whether a sorts before b under o. Ties fall back to key order.
func (o OrderBy) Less(a, b Record) bool {
	ta, tb := a.CreatedTime(), b.CreatedTime()
	if !ta.Equal(tb) {
		if o == OldestFirst {
			return ta.Before(tb)
		}
		return ta.After(tb)
	}
	return a.RecordKey() < b.RecordKey()
}

// EntityStore is a read-side collection of one entity type.
type EntityStore[T Record] interface {
	// FindMatching returns up to limit matches starting at offset, plus the
	// total number of matches ignoring limit and offset.
	FindMatching(ctx context.Context, p Predicate, order OrderBy, limit, offset int) ([]T, int, error)
	// Get returns the record with the given id.
	Get(ctx context.Context, id string) (T, bool, error)
}

// Entities bundles the five collections the search core federates over.
type Entities struct {
	Cases          EntityStore[types.Case]
	Evidence       EntityStore[types.Evidence]
	Suspects       EntityStore[types.Suspect]
	Victims        EntityStore[types.Victim]
	Investigations EntityStore[types.Investigation]
}

// HistoryStore persists search history. Implementations are safe for
// concurrent use.
type HistoryStore interface {
	Append(ctx context.Context, rec types.SearchHistoryRecord) error
	// FindRecentByQuery returns distinct (case-insensitive) prior queries
	// containing text, most recent first.
	FindRecentByQuery(ctx context.Context, text string, limit int) ([]string, error)
	// FindInRange returns records with from <= timestamp < to, oldest first.
	FindInRange(ctx context.Context, from, to time.Time) ([]types.SearchHistoryRecord, error)
	// DeleteOlderThan removes records with timestamp before cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}
