// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Search defaults
const (
	DefaultSearchLimitValue    = 20
	MaxSearchLimitValue        = 100
	MaxResultsPerEntityValue   = 1000
	SuggestionMinCharsValue    = 3
	MaxSuggestionsValue        = 5
	HistoryRetentionDaysValue  = 90
	CacheMaxItemsValue         = 1024
	cacheTTLMsDefault          = 300000
	executorTimeoutMsDefault   = 3000
	analyticsWriteTimeoutMsDef = 1000
)

// Config holds all configuration for the search service.
type Config struct {
	CacheTTL              time.Duration // CACHE_TTL_MS, default 300000ms (5m)
	CacheMaxItems         int           // CACHE_MAX_ITEMS, default 1024
	ExecutorTimeout       time.Duration // EXECUTOR_TIMEOUT_MS, default 3000ms
	MaxResultsPerEntity   int           // MAX_RESULTS_PER_ENTITY, default 1000
	DefaultSearchLimit    int           // DEFAULT_SEARCH_LIMIT, default 20
	MaxSearchLimit        int           // MAX_SEARCH_LIMIT, default 100
	SuggestionMinChars    int           // SUGGESTION_MIN_CHARS, default 3
	MaxSuggestions        int           // MAX_SUGGESTIONS, default 5
	AnalyticsWriteTimeout time.Duration // ANALYTICS_WRITE_TIMEOUT_MS, default 1000ms

	// Storage
	HistoryDSN           string // HISTORY_DSN, default "" (in-memory history)
	DataFile             string // DATA_FILE, default "" (empty collections)
	ReportSchedule       string // REPORT_SCHEDULE, cron spec, default "" (disabled)
	HistoryRetentionDays int    // HISTORY_RETENTION_DAYS, default 90, 0 disables

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		CacheTTL:              getEnvDurationMs("CACHE_TTL_MS", cacheTTLMsDefault),
		CacheMaxItems:         getEnvInt("CACHE_MAX_ITEMS", CacheMaxItemsValue),
		ExecutorTimeout:       getEnvDurationMs("EXECUTOR_TIMEOUT_MS", executorTimeoutMsDefault),
		MaxResultsPerEntity:   getEnvInt("MAX_RESULTS_PER_ENTITY", MaxResultsPerEntityValue),
		DefaultSearchLimit:    getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		MaxSearchLimit:        getEnvInt("MAX_SEARCH_LIMIT", MaxSearchLimitValue),
		SuggestionMinChars:    getEnvInt("SUGGESTION_MIN_CHARS", SuggestionMinCharsValue),
		MaxSuggestions:        getEnvInt("MAX_SUGGESTIONS", MaxSuggestionsValue),
		AnalyticsWriteTimeout: getEnvDurationMs("ANALYTICS_WRITE_TIMEOUT_MS", analyticsWriteTimeoutMsDef),

		HistoryDSN:           getEnvString("HISTORY_DSN", ""),
		DataFile:             getEnvString("DATA_FILE", ""),
		ReportSchedule:       getEnvString("REPORT_SCHEDULE", ""),
		HistoryRetentionDays: getEnvInt("HISTORY_RETENTION_DAYS", HistoryRetentionDaysValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// HistoryRetention returns the retention window, or 0 when retention is off.
func (c *Config) HistoryRetention() time.Duration {
	if c.HistoryRetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.HistoryRetentionDays) * 24 * time.Hour
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
