package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/casesearch/internal/analytics"
	"github.com/usestring/casesearch/pkg/types"
)

// DefaultAnalyticsWindow is the report span when no range is given.
const DefaultAnalyticsWindow = 24 * time.Hour

// AnalyticsInput is the input for casesearch_analytics.
type AnalyticsInput struct {
	From string `json:"from,omitempty" jsonschema:"Range start, RFC 3339 or YYYY-MM-DD (default: 24h before to)"`
	To   string `json:"to,omitempty" jsonschema:"Range end, exclusive, RFC 3339 or YYYY-MM-DD (default: now)"`
}

// QueryCountView is a query and how often it was issued.
type QueryCountView struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// DayCountView is the number of searches on a UTC day.
type DayCountView struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AnalyticsOutput is the output for casesearch_analytics.
type AnalyticsOutput struct {
	FromMs                int64            `json:"from_ms"`
	ToMs                  int64            `json:"to_ms"`
	TotalSearches         int              `json:"total_searches"`
	AverageResponseTimeMs float64          `json:"average_response_time_ms"`
	CacheHitRate          float64          `json:"cache_hit_rate"`
	TopQueries            []QueryCountView `json:"top_queries,omitzero"`
	SearchesByDay         []DayCountView   `json:"searches_by_day,omitzero"`
}

// ToolAnalytics reports search usage over a time range.
func ToolAnalytics(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyticsInput) (*sdkmcp.CallToolResult, AnalyticsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyticsInput) (*sdkmcp.CallToolResult, AnalyticsOutput, error) {
		from, to, err := reportRange(d, input)
		if err != nil {
			return nil, AnalyticsOutput{}, err
		}

		rep, err := d.Recorder.Report(ctx, from, to)
		if err != nil {
			return nil, AnalyticsOutput{}, WrapSearchError(err)
		}
		return nil, ToAnalyticsOutput(rep), nil
	}
}

func reportRange(d *Deps, input AnalyticsInput) (time.Time, time.Time, error) {
	to := d.now().Now()
	if t, err := parseTime("to", input.To); err != nil {
		return time.Time{}, time.Time{}, err
	} else if t != nil {
		to = *t
	}
	from := to.Add(-DefaultAnalyticsWindow)
	if f, err := parseTime("from", input.From); err != nil {
		return time.Time{}, time.Time{}, err
	} else if f != nil {
		from = *f
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidInput(analytics.ErrInvalidRange.Error())
	}
	return from, to, nil
}

// ToAnalyticsOutput converts a report.
func ToAnalyticsOutput(rep *types.AnalyticsReport) AnalyticsOutput {
	out := AnalyticsOutput{
		FromMs:                rep.From.UnixMilli(),
		ToMs:                  rep.To.UnixMilli(),
		TotalSearches:         rep.TotalSearches,
		AverageResponseTimeMs: rep.AverageResponseTime,
		CacheHitRate:          rep.CacheHitRate,
	}
	for _, q := range rep.TopQueries {
		out.TopQueries = append(out.TopQueries, QueryCountView{Query: q.Query, Count: q.Count})
	}
	for _, c := range rep.SearchesByDay {
		out.SearchesByDay = append(out.SearchesByDay, DayCountView{Date: c.Date, Count: c.Count})
	}
	return out
}
