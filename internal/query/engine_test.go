package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/pkg/types"
)

func sampleResponse() *types.SearchResponse {
	return &types.SearchResponse{
		Results: []types.SearchResult{
			{Type: types.ResultTypeCase, ID: "c1", Title: "Romance Scam Investigation", RelevanceScore: 75},
			{Type: types.ResultTypeCase, ID: "c2", Title: "Romance Scam Investigation", RelevanceScore: 75},
			{Type: types.ResultTypeEvidence, ID: "e1", Title: "EV-0001", RelevanceScore: 45},
		},
		Total:       3,
		Page:        1,
		Limit:       20,
		TotalPages:  1,
		Suggestions: []string{},
	}
}

func TestProject_UsesJSONFieldNames(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(), ".results[].id", Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{"c1", "c2", "e1"}, res.Values)
	assert.Equal(t, 3, res.RawCount)
	assert.Empty(t, res.Errors)
}

func TestProject_Deduplicate(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(), ".results[].title", Options{Deduplicate: true})
	require.NoError(t, err)
	assert.Equal(t, []any{"Romance Scam Investigation", "EV-0001"}, res.Values)
	assert.Equal(t, 3, res.RawCount)
}

func TestProject_MaxResults(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(), ".results[].relevanceScore", Options{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(75), float64(75)}, res.Values)
}

func TestProject_Objects(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(),
		`[.results[] | select(.type == "evidence") | {id, score: .relevanceScore}]`, Options{})
	require.NoError(t, err)
	require.Len(t, res.Values, 1)
	assert.Equal(t, []any{map[string]any{"id": "e1", "score": float64(45)}}, res.Values[0])
}

func TestProject_SkipsNull(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(), ".missing", Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Zero(t, res.RawCount)
}

func TestProject_RuntimeErrorHint(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(), ".missing[]", Options{})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "the path may not exist")
}

func TestProject_Halt(t *testing.T) {
	res, err := Project(context.Background(), sampleResponse(), `"stop" | halt_error`, Options{})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "query halted")
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(".results[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")

	_, err = Compile("undefined_fn(1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile")
}

func TestProjection_Reusable(t *testing.T) {
	p, err := Compile(".total")
	require.NoError(t, err)
	assert.Equal(t, ".total", p.String())

	for range 2 {
		res, err := p.Apply(context.Background(), sampleResponse(), Options{})
		require.NoError(t, err)
		assert.Equal(t, []any{float64(3)}, res.Values)
	}
}

func TestProject_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Project(ctx, sampleResponse(), "range(1000000)", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
