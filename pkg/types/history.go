package types

import "time"

// SearchHistoryRecord is one executed search. Records are append-only.
type SearchHistoryRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Query        string    `json:"query"`
	ResultsCount int       `json:"resultsCount"`
	ResponseTime int64     `json:"responseTime"` // Milliseconds
	CacheHit     bool      `json:"cacheHit"`
	Timestamp    time.Time `json:"timestamp"`
}

// AnalyticsReport summarizes search history over a time range.
type AnalyticsReport struct {
	From                time.Time    `json:"from"`
	To                  time.Time    `json:"to"`
	TotalSearches       int          `json:"totalSearches"`
	AverageResponseTime float64      `json:"averageResponseTime"` // Milliseconds
	TopQueries          []QueryCount `json:"topQueries"`
	SearchesByDay       []DayCount   `json:"searchesByDay"`
	CacheHitRate        float64      `json:"cacheHitRate"`
}

// QueryCount is how often a query was issued.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// DayCount is the number of searches on a UTC day (YYYY-MM-DD).
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
