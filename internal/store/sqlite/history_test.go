package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/pkg/types"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) *History {
	t.Helper()
	// Use a temp on-disk DB to exercise PRAGMAs and migrations
	dsn := "file:" + filepath.Join(t.TempDir(), "history.db")
	h, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func record(query string, at time.Time) types.SearchHistoryRecord {
	return types.SearchHistoryRecord{UserID: "u1", Query: query, ResultsCount: 3, ResponseTime: 12, Timestamp: at}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	h := openTemp(t)

	v, err := h.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestOpen_Reopen(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	h, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, h.Append(ctx, record("romance", base)))
	require.NoError(t, h.Close())

	h, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer h.Close()

	got, err := h.FindInRange(ctx, base, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistory_AppendAndFindInRange(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()

	rec := record("romance", base)
	rec.ID = "fixed-id"
	rec.CacheHit = true
	require.NoError(t, h.Append(ctx, rec))
	require.NoError(t, h.Append(ctx, record("burglary", base.Add(time.Hour))))

	got, err := h.FindInRange(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fixed-id", got[0].ID)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, "romance", got[0].Query)
	assert.Equal(t, 3, got[0].ResultsCount)
	assert.Equal(t, int64(12), got[0].ResponseTime)
	assert.True(t, got[0].CacheHit)
	assert.True(t, got[0].Timestamp.Equal(base))

	all, err := h.FindInRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[1].ID)
}

func TestHistory_FindRecentByQuery(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()
	for i, q := range []string{"romance scam", "Romance Scam", "burglary", "romance ring", "romance"} {
		require.NoError(t, h.Append(ctx, record(q, base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := h.FindRecentByQuery(ctx, "ROMANCE", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"romance", "romance ring", "Romance Scam"}, got)

	got, err = h.FindRecentByQuery(ctx, "romance", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"romance"}, got)

	got, err = h.FindRecentByQuery(ctx, "arson", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistory_DeleteOlderThan(t *testing.T) {
	h := openTemp(t)
	ctx := context.Background()
	require.NoError(t, h.Append(ctx, record("a", base)))
	require.NoError(t, h.Append(ctx, record("b", base.Add(time.Hour))))

	n, err := h.DeleteOlderThan(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rest, err := h.FindInRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "b", rest[0].Query)
}

func TestHistory_ClosedFails(t *testing.T) {
	h := openTemp(t)
	require.NoError(t, h.Close())

	assert.Error(t, h.Append(context.Background(), record("a", base)))
}
