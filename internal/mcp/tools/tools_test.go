package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/internal/analytics"
	"github.com/usestring/casesearch/internal/cache"
	"github.com/usestring/casesearch/internal/clock"
	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/internal/dataset"
	"github.com/usestring/casesearch/internal/search"
	"github.com/usestring/casesearch/internal/store/memory"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newDeps(t *testing.T) (*Deps, *clock.Fake) {
	t.Helper()
	cfg := config.Load()
	clk := clock.NewFake(now)

	cols := memory.NewCollections()
	_, err := dataset.LoadFile("../../../examples/dataset.json", cols)
	require.NoError(t, err)

	history := memory.NewHistory()
	rc, err := cache.New(cfg.CacheMaxItems, cfg.CacheTTL, clk)
	require.NoError(t, err)
	rec := analytics.NewRecorder(history, time.Second)

	svc, err := search.New(search.Deps{
		Config:   cfg,
		Entities: cols.Entities(),
		History:  history,
		Cache:    rc,
		Recorder: rec,
		Clock:    clk,
	})
	require.NoError(t, err)

	return &Deps{
		Config:   cfg,
		Search:   svc,
		Entities: cols.Entities(),
		Recorder: rec,
		Clock:    clk,
	}, clk
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var coded *CodedError
	require.True(t, errors.As(err, &coded), "expected *CodedError, got %v", err)
	assert.Equal(t, code, coded.Code)
}

func TestToolSearch(t *testing.T) {
	d, _ := newDeps(t)
	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "romance"})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 1, out.TotalPages)
	require.Len(t, out.Results, 4)
	assert.Equal(t, "case", out.Results[0].Type)
	assert.Equal(t, 75, out.Results[0].RelevanceScore)
	assert.Equal(t, "evidence", out.Results[3].Type)
	assert.Equal(t, "ev-2001", out.Results[3].ID)
	assert.Equal(t, 45, out.Results[3].RelevanceScore)

	meta, ok := out.Results[3].Metadata.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "romance_chat_log.txt", meta["fileName"])

	assert.NotEmpty(t, out.Facets.Types)
	assert.False(t, out.Cached)
	assert.Contains(t, out.Hint, "casesearch_get_record")
}

func TestToolSearch_Filters(t *testing.T) {
	d, _ := newDeps(t)
	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{
		Query:  "romance",
		Types:  []string{"Case"},
		Status: []string{"open"},
		From:   "2024-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Total)
	for _, r := range out.Results {
		assert.Equal(t, "case", r.Type)
	}
}

func TestToolSearch_Projection(t *testing.T) {
	d, _ := newDeps(t)
	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{
		Query: "romance",
		JQ:    `.results[] | select(.type == "evidence") | .id`,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"ev-2001"}, out.Projection)
	assert.Empty(t, out.ProjectionErrors)
}

func TestToolSearch_InvalidInput(t *testing.T) {
	d, _ := newDeps(t)
	tool := ToolSearch(d)

	tests := []struct {
		name  string
		input SearchInput
	}{
		{"bad jq", SearchInput{Query: "romance", JQ: ".results[) |"}},
		{"bad date", SearchInput{Query: "romance", From: "last tuesday"}},
		{"limit too large", SearchInput{Query: "romance", Limit: 500}},
		{"unknown type", SearchInput{Query: "romance", Types: []string{"witness"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tool(context.Background(), nil, tt.input)
			requireCode(t, err, ErrCodeInvalidInput)
		})
	}
}

func TestToolSearch_NoMatchesHint(t *testing.T) {
	d, _ := newDeps(t)
	_, out, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "zzzz-nothing"})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.Contains(t, out.Hint, "No matches")
}

func TestToolSuggest(t *testing.T) {
	d, _ := newDeps(t)
	_, _, err := ToolSearch(d)(context.Background(), nil, SearchInput{Query: "romance"})
	require.NoError(t, err)

	_, out, err := ToolSuggest(d)(context.Background(), nil, SuggestInput{Query: "rom"})
	require.NoError(t, err)
	assert.Contains(t, out.Suggestions, "romance")

	_, out, err = ToolSuggest(d)(context.Background(), nil, SuggestInput{Query: "ro"})
	require.NoError(t, err)
	assert.Empty(t, out.Suggestions)

	_, _, err = ToolSuggest(d)(context.Background(), nil, SuggestInput{Query: "  "})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolAnalytics(t *testing.T) {
	d, clk := newDeps(t)
	run := ToolSearch(d)
	for range 2 {
		_, _, err := run(context.Background(), nil, SearchInput{Query: "romance"})
		require.NoError(t, err)
	}
	clk.Advance(time.Minute)

	_, out, err := ToolAnalytics(d)(context.Background(), nil, AnalyticsInput{})
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalSearches)
	assert.InDelta(t, 0.5, out.CacheHitRate, 1e-9)
	assert.Equal(t, []QueryCountView{{Query: "romance", Count: 2}}, out.TopQueries)
	assert.Equal(t, []DayCountView{{Date: "2024-03-01", Count: 2}}, out.SearchesByDay)
	assert.Equal(t, now.Add(time.Minute).UnixMilli(), out.ToMs)
	assert.Equal(t, now.Add(time.Minute-DefaultAnalyticsWindow).UnixMilli(), out.FromMs)
}

func TestToolAnalytics_InvalidRange(t *testing.T) {
	d, _ := newDeps(t)
	_, _, err := ToolAnalytics(d)(context.Background(), nil, AnalyticsInput{From: "2024-03-02", To: "2024-03-01"})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolGetRecord(t *testing.T) {
	d, _ := newDeps(t)
	tool := ToolGetRecord(d)

	_, out, err := tool(context.Background(), nil, GetRecordInput{Type: "case", ID: "case-1001"})
	require.NoError(t, err)
	rec, ok := out.Record.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Romance Scam Investigation", rec["title"])

	_, _, err = tool(context.Background(), nil, GetRecordInput{Type: "case", ID: "case-9999"})
	requireCode(t, err, ErrCodeNotFound)

	_, _, err = tool(context.Background(), nil, GetRecordInput{Type: "witness", ID: "w-1"})
	requireCode(t, err, ErrCodeInvalidInput)

	_, _, err = tool(context.Background(), nil, GetRecordInput{Type: "case"})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestWrapSearchError(t *testing.T) {
	requireCode(t, WrapSearchError(&search.SearchError{Cause: errors.New("boom")}), ErrCodeSearchFailed)
	requireCode(t, WrapSearchError(context.DeadlineExceeded), ErrCodeTimeout)
	requireCode(t, WrapSearchError(analytics.ErrInvalidRange), ErrCodeInvalidInput)

	orig := ErrNotFound("case", "x")
	assert.Same(t, orig, WrapSearchError(orig))
	assert.NoError(t, WrapSearchError(nil))
}
