package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

func record(query string, at time.Time) types.SearchHistoryRecord {
	return types.SearchHistoryRecord{ID: query + at.String(), UserID: "u1", Query: query, Timestamp: at}
}

func TestHistory_FindRecentByQuery(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()
	for i, q := range []string{"romance scam", "Romance Scam", "burglary", "romance ring", "romance"} {
		require.NoError(t, h.Append(ctx, record(q, base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := h.FindRecentByQuery(ctx, "ROMANCE", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"romance", "romance ring", "Romance Scam"}, got)

	got, err = h.FindRecentByQuery(ctx, "romance", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"romance", "romance ring"}, got)
}

func TestHistory_OutOfOrderAppend(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()
	require.NoError(t, h.Append(ctx, record("late", base.Add(time.Hour))))
	require.NoError(t, h.Append(ctx, record("early", base)))

	got, err := h.FindInRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].Query)
	assert.Equal(t, "late", got[1].Query)
}

func TestHistory_FindInRangeHalfOpen(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()
	require.NoError(t, h.Append(ctx, record("a", base)))
	require.NoError(t, h.Append(ctx, record("b", base.Add(time.Hour))))

	got, err := h.FindInRange(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Query)
}

func TestHistory_DeleteOlderThan(t *testing.T) {
	h := NewHistory()
	ctx := context.Background()
	require.NoError(t, h.Append(ctx, record("a", base)))
	require.NoError(t, h.Append(ctx, record("b", base.Add(time.Hour))))
	require.NoError(t, h.Append(ctx, record("c", base.Add(2*time.Hour))))

	n, err := h.DeleteOlderThan(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, h.Len())
}

func TestHistory_Closed(t *testing.T) {
	h := NewHistory()
	require.NoError(t, h.Close())

	err := h.Append(context.Background(), record("a", base))
	assert.ErrorIs(t, err, store.ErrClosed)
}
