// Package query projects search responses and reports with jq expressions.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Projection is a compiled jq expression. It is safe for concurrent use.
type Projection struct {
	expr string
	code *gojq.Code
}

// Result holds the values a projection produced.
type Result struct {
	Values   []any    `json:"values"`
	Errors   []string `json:"errors,omitempty"` // Runtime errors, e.g. type mismatch
	RawCount int      `json:"raw_count"`        // Count before deduplication
}

// Options tune a projection run.
type Options struct {
	Deduplicate bool
	MaxResults  int // 0 means unlimited
}

// Compile parses and compiles expression.
func Compile(expression string) (*Projection, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return &Projection{expr: expression, code: code}, nil
}

// String returns the source expression.
func (p *Projection) String() string { return p.expr }

// Apply runs the projection over v, which is first converted to its JSON
// form so struct field names follow their json tags.
func (p *Projection) Apply(ctx context.Context, v any, opts Options) (*Result, error) {
	input, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}

	result := &Result{Values: make([]any, 0)}
	seen := make(map[string]bool)
	iter := p.code.RunWithContext(ctx, input)

	for {
		if opts.MaxResults > 0 && len(result.Values) >= opts.MaxResults {
			break
		}
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := out.(error); isErr {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		if out == nil {
			continue
		}

		result.RawCount++
		if opts.Deduplicate {
			key := valueKey(out)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		result.Values = append(result.Values, out)
	}
	return result, nil
}

// Project compiles expression and applies it to v in one step.
func Project(ctx context.Context, v any, expression string, opts Options) (*Result, error) {
	p, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return p.Apply(ctx, v, opts)
}

func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding projection input: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding projection input: %w", err)
	}
	return out, nil
}

// formatJQError adds hints to common runtime errors. gojq reports these as
// plain errors, so the hints key off the message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this response)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return errStr + hint
}

// valueKey creates a string key for deduplication.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
