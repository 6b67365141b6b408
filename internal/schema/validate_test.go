package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/pkg/types"
)

func newValidator(t *testing.T) *RequestValidator {
	t.Helper()
	v, err := NewRequestValidator(Options{})
	require.NoError(t, err)
	return v
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	return verr
}

func TestValidate_AppliesDefaults(t *testing.T) {
	v := newValidator(t)

	got, err := v.Validate(&types.SearchRequest{Query: "  romance  "})
	require.NoError(t, err)

	assert.Equal(t, "romance", got.Query)
	assert.Nil(t, got.Filters)
	assert.Equal(t, &types.Sort{Field: types.SortByRelevance, Order: types.SortDesc}, got.Sort)
	assert.Equal(t, &types.Pagination{Page: 1, Limit: 20}, got.Pagination)
}

func TestValidate_EmptyQueryRejected(t *testing.T) {
	v := newValidator(t)

	for _, q := range []string{"", "   "} {
		_, err := v.Validate(&types.SearchRequest{Query: q})
		verr := requireValidationError(t, err)
		assert.Equal(t, "query", verr.Field)
	}
}

func TestValidate_LimitOutOfRangeRejected(t *testing.T) {
	v := newValidator(t)

	_, err := v.Validate(&types.SearchRequest{Query: "x", Pagination: &types.Pagination{Page: 1, Limit: 150}})
	verr := requireValidationError(t, err)
	assert.Equal(t, "pagination.limit", verr.Field)

	_, err = v.Validate(&types.SearchRequest{Query: "x", Pagination: &types.Pagination{Limit: -1}})
	verr = requireValidationError(t, err)
	assert.Equal(t, "pagination.limit", verr.Field)
}

func TestValidate_NegativePageRejected(t *testing.T) {
	v := newValidator(t)

	_, err := v.Validate(&types.SearchRequest{Query: "x", Pagination: &types.Pagination{Page: -2}})
	verr := requireValidationError(t, err)
	assert.Equal(t, "pagination.page", verr.Field)
}

func TestValidate_UnknownEnumsRejected(t *testing.T) {
	v := newValidator(t)

	_, err := v.Validate(&types.SearchRequest{Query: "x", Sort: &types.Sort{Field: "popularity"}})
	verr := requireValidationError(t, err)
	assert.Equal(t, "sort.field", verr.Field)

	_, err = v.Validate(&types.SearchRequest{Query: "x", Filters: &types.Filters{Priority: []types.Priority{"URGENT"}}})
	verr = requireValidationError(t, err)
	assert.Equal(t, "filters.priority.0", verr.Field)

	_, err = v.Validate(&types.SearchRequest{Query: "x", Filters: &types.Filters{Types: []types.ResultType{"witness"}}})
	verr = requireValidationError(t, err)
	assert.Equal(t, "filters.types.0", verr.Field)
}

func TestValidate_DateRangeOrder(t *testing.T) {
	v := newValidator(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	_, err := v.Validate(&types.SearchRequest{Query: "x", Filters: &types.Filters{DateRange: &types.DateRange{From: &from, To: &to}}})
	verr := requireValidationError(t, err)
	assert.Equal(t, "filters.dateRange", verr.Field)

	got, err := v.Validate(&types.SearchRequest{Query: "x", Filters: &types.Filters{DateRange: &types.DateRange{From: &from, To: &from}}})
	require.NoError(t, err)
	require.NotNil(t, got.Filters.DateRange)
	assert.True(t, got.Filters.DateRange.From.Equal(from))
}

func TestValidate_NormalizesFilterSets(t *testing.T) {
	v := newValidator(t)
	req := &types.SearchRequest{
		Query: "x",
		Filters: &types.Filters{
			Types:    []types.ResultType{types.ResultTypeVictim, types.ResultTypeCase, types.ResultTypeVictim},
			Status:   []string{"open", "CLOSED", " Open "},
			Priority: []types.Priority{types.PriorityLow, types.PriorityHigh, types.PriorityLow},
			CaseType: []string{"fraud"},
		},
	}

	got, err := v.Validate(req)
	require.NoError(t, err)

	assert.Equal(t, []types.ResultType{types.ResultTypeCase, types.ResultTypeVictim}, got.Filters.Types)
	assert.Equal(t, []string{"CLOSED", "OPEN"}, got.Filters.Status)
	assert.Equal(t, []types.Priority{types.PriorityHigh, types.PriorityLow}, got.Filters.Priority)
	assert.Equal(t, []string{"FRAUD"}, got.Filters.CaseType)

	// The input is left untouched.
	assert.Equal(t, []string{"open", "CLOSED", " Open "}, req.Filters.Status)
}

func TestValidate_EmptyFiltersCollapse(t *testing.T) {
	v := newValidator(t)

	got, err := v.Validate(&types.SearchRequest{Query: "x", Filters: &types.Filters{Status: []string{}}})
	require.NoError(t, err)
	assert.Nil(t, got.Filters)
}

func TestValidate_NFC(t *testing.T) {
	v := newValidator(t)

	got, err := v.Validate(&types.SearchRequest{Query: "cafe\u0301"})
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", got.Query)
}

func TestValidateJSON(t *testing.T) {
	v := newValidator(t)

	got, err := v.ValidateJSON([]byte(`{"query":"romance","sort":{"field":"date","order":"asc"},"pagination":{"page":2,"limit":5}}`))
	require.NoError(t, err)
	assert.Equal(t, types.SortByDate, got.Sort.Field)
	assert.Equal(t, types.SortAsc, got.Sort.Order)
	assert.Equal(t, 2, got.Pagination.Page)
	assert.Equal(t, 5, got.Pagination.Limit)
}

func TestValidateJSON_Rejections(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing query", `{}`, "query"},
		{"unknown field", `{"query":"x","colour":"red"}`, "colour"},
		{"page zero", `{"query":"x","pagination":{"page":0}}`, "pagination.page"},
		{"page too large", `{"query":"x","pagination":{"page":4611686018427387904,"limit":4}}`, "pagination.page"},
		{"limit too large", `{"query":"x","pagination":{"limit":150}}`, "pagination.limit"},
		{"bad date", `{"query":"x","filters":{"dateRange":{"from":"yesterday"}}}`, "filters.dateRange.from"},
		{"wrong type", `{"query":42}`, "query"},
		{"malformed", `{"query":`, "request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateJSON([]byte(tt.body))
			verr := requireValidationError(t, err)
			assert.Equal(t, tt.field, verr.Field, "issues: %v", verr.Issues)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestValidate_CustomMaxLimit(t *testing.T) {
	v, err := NewRequestValidator(Options{DefaultLimit: 5, MaxLimit: 10})
	require.NoError(t, err)

	got, err := v.Validate(&types.SearchRequest{Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Pagination.Limit)

	_, err = v.Validate(&types.SearchRequest{Query: "x", Pagination: &types.Pagination{Limit: 11}})
	requireValidationError(t, err)

	_, err = NewRequestValidator(Options{DefaultLimit: 50, MaxLimit: 10})
	assert.Error(t, err)
}
