package mcpsrv

import (
	"context"
	"path/filepath"
	"testing"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/internal/config"
	"github.com/usestring/casesearch/internal/store/memory"
	"github.com/usestring/casesearch/internal/store/sqlite"
	"github.com/usestring/casesearch/pkg/types"
)

type countInput struct {
	Query string `json:"query"`
}

type countOutput struct {
	Count int `json:"count"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.LogFile = filepath.Join(t.TempDir(), "casesearch.log")
	cfg.HistoryDSN = ""
	cfg.ReportSchedule = ""
	return cfg
}

func TestLoadDataset(t *testing.T) {
	entities, err := LoadDataset("../../examples/dataset.json")
	require.NoError(t, err)

	c, ok, err := entities.Cases.Get(context.Background(), "case-1001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Romance Scam Investigation", c.Title)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	empty, err := LoadDataset("")
	require.NoError(t, err)
	_, ok, err = empty.Cases.Get(context.Background(), "case-1001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewServer_MemoryHistory(t *testing.T) {
	entities, err := LoadDataset("../../examples/dataset.json")
	require.NoError(t, err)

	srv, err := NewServer(entities, WithConfig(testConfig(t)))
	require.NoError(t, err)
	defer srv.Close()

	_, ok := srv.Deps().History.(*memory.History)
	assert.True(t, ok)
	assert.NotNil(t, srv.MCPServer())

	resp, err := srv.Deps().Search.Search(context.Background(), &types.SearchRequest{Query: "romance"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
}

func TestNewServer_SQLiteHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistoryDSN = "file:" + filepath.Join(t.TempDir(), "history.db")

	srv, err := NewServer(memory.NewCollections().Entities(), WithConfig(cfg))
	require.NoError(t, err)

	_, ok := srv.Deps().History.(*sqlite.History)
	assert.True(t, ok)
	assert.NoError(t, srv.Close())
}

func TestNewServer_WithHistoryNotClosed(t *testing.T) {
	h := memory.NewHistory()
	srv, err := NewServer(memory.NewCollections().Entities(), WithConfig(testConfig(t)), WithHistory(h))
	require.NoError(t, err)
	require.NoError(t, srv.Close())

	assert.Same(t, h, srv.Deps().History)
	assert.NoError(t, h.Append(context.Background(), types.SearchHistoryRecord{Query: "still open"}))
}

func TestNewServer_DepsTool(t *testing.T) {
	var got *Deps
	srv, err := NewServer(memory.NewCollections().Entities(),
		WithConfig(testConfig(t)),
		WithoutBuiltinTools(),
		WithoutBuiltinPrompts(),
		WithDepsTool(&mcp.Tool{Name: "count", Description: "Count matches"},
			func(d *Deps) func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
				got = d
				return func(ctx context.Context, req *mcp.CallToolRequest, in countInput) (*mcp.CallToolResult, countOutput, error) {
					return nil, countOutput{}, nil
				}
			}),
	)
	require.NoError(t, err)
	defer srv.Close()

	assert.Same(t, srv.Deps(), got)
}

func TestServer_RunRejectsBadSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportSchedule = "not a cron spec"

	srv, err := NewServer(memory.NewCollections().Entities(), WithConfig(cfg))
	require.NoError(t, err)
	defer srv.Close()

	assert.Error(t, srv.Run(context.Background()))
}
