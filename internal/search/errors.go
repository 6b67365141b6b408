package search

import (
	"errors"

	"github.com/usestring/casesearch/pkg/types"
)

// ErrSearchFailed matches every *SearchError via errors.Is.
var ErrSearchFailed = errors.New("search failed")

// SearchError reports that every executor that ran failed. Cause joins the
// individual executor errors.
type SearchError struct {
	Failed []types.ResultType
	Cause  error
}

func (e *SearchError) Error() string { return "search failed" }

// Unwrap exposes the joined executor errors.
func (e *SearchError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrSearchFailed.
func (e *SearchError) Is(target error) bool { return target == ErrSearchFailed }
