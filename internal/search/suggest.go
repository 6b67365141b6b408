package search

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/usestring/casesearch/internal/store"
)

// Suggester proposes prior queries that contain the current one.
type Suggester struct {
	history  store.HistoryStore
	minChars int
	limit    int
}

// NewSuggester creates a suggester reading from history. Queries shorter
// than minChars runes get no suggestions.
func NewSuggester(history store.HistoryStore, minChars, limit int) *Suggester {
	return &Suggester{history: history, minChars: minChars, limit: limit}
}

// Suggest returns up to limit distinct prior queries containing query, most
// recent first. Store errors are logged and yield no suggestions.
func (s *Suggester) Suggest(ctx context.Context, query string) []string {
	if s == nil || s.history == nil || s.limit <= 0 || utf8.RuneCountInString(query) < s.minChars {
		return []string{}
	}
	out, err := s.history.FindRecentByQuery(ctx, query, s.limit)
	if err != nil {
		slog.Warn("suggestion lookup failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	if len(out) > s.limit {
		out = out[:s.limit]
	}
	return out
}
