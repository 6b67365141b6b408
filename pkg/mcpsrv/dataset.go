package mcpsrv

import (
	"log/slog"

	"github.com/usestring/casesearch/internal/dataset"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/internal/store/memory"
)

// LoadDataset reads a JSON dataset into in-memory collections. An empty
// path yields empty collections.
func LoadDataset(path string) (store.Entities, error) {
	cols := memory.NewCollections()
	if path == "" {
		return cols.Entities(), nil
	}
	counts, err := dataset.LoadFile(path, cols)
	if err != nil {
		return store.Entities{}, err
	}
	slog.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("cases", counts.Cases),
		slog.Int("evidence", counts.Evidence),
		slog.Int("suspects", counts.Suspects),
		slog.Int("victims", counts.Victims),
		slog.Int("investigations", counts.Investigations),
	)
	return cols.Entities(), nil
}
