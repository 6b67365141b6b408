package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/casesearch/internal/analytics"
	"github.com/usestring/casesearch/internal/fanout"
	"github.com/usestring/casesearch/internal/schema"
	"github.com/usestring/casesearch/internal/search"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeSearchFailed = "SEARCH_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapSearchError converts a search, validation or analytics error to a
// coded error.
func WrapSearchError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var verr *schema.ValidationError
	var serr *search.SearchError
	switch {
	case errors.As(err, &verr):
		return &CodedError{Code: ErrCodeInvalidInput, Message: verr.Error()}
	case errors.Is(err, analytics.ErrInvalidRange):
		return &CodedError{Code: ErrCodeInvalidInput, Message: err.Error()}
	case errors.Is(err, fanout.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "search timed out", Cause: err}
	case errors.As(err, &serr):
		msg := "search failed"
		if len(serr.Failed) > 0 {
			msg = fmt.Sprintf("search failed for %v", serr.Failed)
		}
		coded = &CodedError{Code: ErrCodeSearchFailed, Message: msg, Cause: serr.Cause}
	default:
		coded = &CodedError{Code: ErrCodeSearchFailed, Message: err.Error(), Cause: err}
	}

	slog.Warn("tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
