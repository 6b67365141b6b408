// Package sqlite provides a SQLite-backed HistoryStore using the CGO-less
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // CGO-less SQLite driver

	"github.com/usestring/casesearch/internal/relevance"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// History is a SQLite-backed implementation of store.HistoryStore.
type History struct {
	db *sql.DB
}

var _ store.HistoryStore = (*History)(nil)

// Open opens (creating if needed) the history database at dsn and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*History, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

// Close closes the database connection.
func (s *History) Close() error {
	return s.db.Close()
}

// Append records one search. A missing ID is assigned.
func (s *History) Append(ctx context.Context, rec types.SearchHistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (id, user_id, query, query_folded, results_count, response_time_ms, cache_hit, ts_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.UserID,
		rec.Query,
		relevance.Fold(rec.Query),
		rec.ResultsCount,
		rec.ResponseTime,
		rec.CacheHit,
		rec.Timestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert search history: %w", err)
	}
	return nil
}

// FindRecentByQuery returns distinct prior queries containing text, most
// recent first. For each folded query the most recent spelling is returned.
func (s *History) FindRecentByQuery(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	// SQLite takes bare columns from the row holding MAX(ts_ms).
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, MAX(ts_ms) AS last_ts
		FROM search_history
		WHERE instr(query_folded, ?) > 0
		GROUP BY query_folded
		ORDER BY last_ts DESC
		LIMIT ?
	`, relevance.Fold(text), limit)
	if err != nil {
		return nil, fmt.Errorf("query recent searches: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var q string
		var ts int64
		if err := rows.Scan(&q, &ts); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// FindInRange returns records with from <= timestamp < to, oldest first.
func (s *History) FindInRange(ctx context.Context, from, to time.Time) ([]types.SearchHistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, query, results_count, response_time_ms, cache_hit, ts_ms
		FROM search_history
		WHERE ts_ms >= ? AND ts_ms < ?
		ORDER BY ts_ms, rowid
	`, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	defer rows.Close()

	var out []types.SearchHistoryRecord
	for rows.Next() {
		var rec types.SearchHistoryRecord
		var tsMs int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Query, &rec.ResultsCount, &rec.ResponseTime, &rec.CacheHit, &tsMs); err != nil {
			return nil, err
		}
		rec.Timestamp = time.UnixMilli(tsMs).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes records timestamped before cutoff.
func (s *History) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history WHERE ts_ms < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete search history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
