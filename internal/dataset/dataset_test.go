package dataset

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/internal/store/memory"
)

func TestLoadFile_ExampleDataset(t *testing.T) {
	cols := memory.NewCollections()

	counts, err := LoadFile(filepath.Join("..", "..", "examples", "dataset.json"), cols)
	require.NoError(t, err)

	assert.Equal(t, Counts{Cases: 4, Evidence: 2, Suspects: 1, Victims: 1, Investigations: 1}, counts)
	assert.Equal(t, 9, counts.Total())
	assert.Equal(t, counts.Total(), cols.Len())

	got, ok, err := cols.Cases.Get(context.Background(), "case-1001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Romance Scam Investigation", got.Title)

	recs, total, err := cols.Evidence.FindMatching(context.Background(), store.Predicate{Text: "romance"}, store.NewestFirst, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "romance_chat_log.txt", recs[0].FileName)
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", `{"cases":[],"witnesses":[]}`, "unknown field"},
		{"missing id", `{"cases":[{"title":"x"}]}`, "cases[0]: missing id"},
		{"duplicate id", `{"victims":[{"id":"v"},{"id":"v"}]}`, `victims[1]: duplicate id "v"`},
		{"bad json", `{"cases":`, "decoding dataset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Upserts(t *testing.T) {
	cols := memory.NewCollections()

	_, err := Load(strings.NewReader(`{"cases":[{"id":"c","title":"first"}]}`), cols)
	require.NoError(t, err)
	_, err = Load(strings.NewReader(`{"cases":[{"id":"c","title":"second"}]}`), cols)
	require.NoError(t, err)

	assert.Equal(t, 1, cols.Cases.Len())
	got, _, err := cols.Cases.Get(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), memory.NewCollections())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	body := `cases:
  - id: case-1
    caseNumber: CR-2024-001
    title: Romance Scam Investigation
    status: OPEN
    priority: HIGH
    createdAt: 2024-02-27T09:15:00Z
    updatedAt: 2024-02-27T09:15:00Z
evidence:
  - id: ev-1
    caseId: case-1
    fileName: romance_chat_log.txt
    createdAt: "2024-02-28T13:00:00Z"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cols := memory.NewCollections()
	counts, err := LoadFile(path, cols)
	require.NoError(t, err)
	assert.Equal(t, Counts{Cases: 1, Evidence: 1}, counts)

	got, ok, err := cols.Cases.Get(context.Background(), "case-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "CR-2024-001", got.CaseNumber)
	assert.Equal(t, 2024, got.CreatedAt.Year())
}

func TestLoadFile_YAMLUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yml")
	require.NoError(t, os.WriteFile(path, []byte("witnesses: []\n"), 0o600))

	_, err := LoadFile(path, memory.NewCollections())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}
