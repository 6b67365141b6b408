// Package schema validates and normalizes search requests against a JSON
// Schema reflected from types.SearchRequest.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/casesearch/pkg/types"
)

// ErrInvalidRequest matches every *ValidationError via errors.Is.
var ErrInvalidRequest = errors.New("invalid search request")

// Issue is one violation found in a request.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports a malformed request. Field and Message describe
// the first issue; Issues lists all of them.
type ValidationError struct {
	Field   string
	Message string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidRequest.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

func newValidationError(issues []Issue) *ValidationError {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Field != issues[j].Field {
			return issues[i].Field < issues[j].Field
		}
		return issues[i].Message < issues[j].Message
	})
	issues = slices.Compact(issues)
	return &ValidationError{Field: issues[0].Field, Message: issues[0].Message, Issues: issues}
}

// Options bound the pagination defaults.
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// RequestValidator checks requests against the compiled request schema.
// It is safe for concurrent use.
type RequestValidator struct {
	schema *santhosh.Schema
	raw    *jsonschema.Schema
	opts   Options
}

// NewRequestValidator reflects and compiles the request schema.
func NewRequestValidator(opts Options) (*RequestValidator, error) {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = types.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = types.MaxLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		return nil, fmt.Errorf("default limit %d exceeds max limit %d", opts.DefaultLimit, opts.MaxLimit)
	}

	raw := RequestSchema(opts.MaxLimit)
	compiled, err := compileSchema(raw)
	if err != nil {
		return nil, err
	}
	return &RequestValidator{schema: compiled, raw: raw, opts: opts}, nil
}

// RequestSchema reflects types.SearchRequest and adds the value constraints
// Go types cannot express.
func RequestSchema(maxLimit int) *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	s := r.Reflect(&types.SearchRequest{})

	one := uint64(1)
	if q := property(s, "query"); q != nil {
		q.MinLength = &one
		q.Description = "Free-text query, matched case-insensitively as a substring"
	}

	resultTypes := make([]any, len(types.AllResultTypes))
	for i, t := range types.AllResultTypes {
		resultTypes[i] = string(t)
	}
	priorities := make([]any, len(types.AllPriorities))
	for i, p := range types.AllPriorities {
		priorities[i] = string(p)
	}

	if t := property(s, "filters", "types"); t != nil && t.Items != nil {
		t.Items.Enum = resultTypes
	}
	if p := property(s, "filters", "priority"); p != nil && p.Items != nil {
		p.Items.Enum = priorities
	}
	for _, name := range []string{"status", "caseType"} {
		if p := property(s, "filters", name); p != nil && p.Items != nil {
			p.Items.MinLength = &one
		}
	}
	if f := property(s, "sort", "field"); f != nil {
		f.Enum = []any{
			string(types.SortByRelevance), string(types.SortByDate),
			string(types.SortByPriority), string(types.SortByStatus),
		}
	}
	if o := property(s, "sort", "order"); o != nil {
		o.Enum = []any{string(types.SortAsc), string(types.SortDesc)}
	}
	if p := property(s, "pagination", "page"); p != nil {
		p.Minimum = json.Number("1")
		p.Maximum = json.Number(strconv.Itoa(types.MaxPage))
	}
	if l := property(s, "pagination", "limit"); l != nil {
		l.Minimum = json.Number("1")
		l.Maximum = json.Number(strconv.Itoa(maxLimit))
	}
	return s
}

// property walks nested object properties.
func property(s *jsonschema.Schema, path ...string) *jsonschema.Schema {
	for _, name := range path {
		if s == nil || s.Properties == nil {
			return nil
		}
		next, ok := s.Properties.Get(name)
		if !ok {
			return nil
		}
		s = next
	}
	return s
}

// compileSchema compiles a reflected schema into a validator schema.
func compileSchema(schema *jsonschema.Schema) (*santhosh.Schema, error) {
	// Convert to JSON and back to get a clean map[string]any
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	var schemaValue any
	if err := json.Unmarshal(schemaJSON, &schemaValue); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := santhosh.NewCompiler()
	compiler.AssertFormat()
	if err := compiler.AddResource("search-request.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("search-request.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return compiled, nil
}

// Schema returns the reflected request schema.
func (v *RequestValidator) Schema() *jsonschema.Schema {
	return v.raw
}

// Validate checks req and returns a normalized copy with defaults applied.
// req is not modified.
func (v *RequestValidator) Validate(req *types.SearchRequest) (*types.SearchRequest, error) {
	if req == nil {
		return nil, newValidationError([]Issue{{Field: "request", Message: "request is required"}})
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, newValidationError([]Issue{{Field: "request", Message: err.Error()}})
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, newValidationError([]Issue{{Field: "request", Message: err.Error()}})
	}
	if err := v.validateValue(value); err != nil {
		return nil, err
	}
	return v.normalize(req)
}

// ValidateJSON decodes and validates a raw request body.
func (v *RequestValidator) ValidateJSON(data []byte) (*types.SearchRequest, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, newValidationError([]Issue{{Field: "request", Message: fmt.Sprintf("invalid JSON: %s", err.Error())}})
	}
	if err := v.validateValue(value); err != nil {
		return nil, err
	}
	var req types.SearchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, newValidationError([]Issue{{Field: "request", Message: err.Error()}})
	}
	return v.normalize(&req)
}

func (v *RequestValidator) validateValue(value any) error {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}
	var verr *santhosh.ValidationError
	if !errors.As(err, &verr) {
		return newValidationError([]Issue{{Field: "request", Message: err.Error()}})
	}
	var issues []Issue
	collectErrors(verr, &issues)
	if len(issues) == 0 {
		issues = append(issues, Issue{Field: "request", Message: verr.ErrorKind.LocalizedString(printer)})
	}
	return newValidationError(issues)
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *santhosh.ValidationError, issues *[]Issue) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		base := strings.Join(err.InstanceLocation, ".")
		switch k := err.ErrorKind.(type) {
		case *kind.Required:
			for _, missing := range k.Missing {
				*issues = append(*issues, Issue{Field: joinField(base, missing), Message: "is required"})
			}
		case *kind.AdditionalProperties:
			for _, extra := range k.Properties {
				*issues = append(*issues, Issue{Field: joinField(base, extra), Message: "unknown field"})
			}
		default:
			msg := err.ErrorKind.LocalizedString(printer)
			// Skip $ref and schema reference messages - they're not useful errors
			if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
				if base == "" {
					base = "request"
				}
				*issues = append(*issues, Issue{Field: base, Message: msg})
			}
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, issues)
	}
}

func joinField(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
