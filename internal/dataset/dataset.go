// Package dataset loads record fixtures into the in-memory stores.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/usestring/casesearch/internal/store/memory"
	"github.com/usestring/casesearch/pkg/types"
)

// File is the on-disk fixture layout.
type File struct {
	Cases          []types.Case          `json:"cases"`
	Evidence       []types.Evidence      `json:"evidence"`
	Suspects       []types.Suspect       `json:"suspects"`
	Victims        []types.Victim        `json:"victims"`
	Investigations []types.Investigation `json:"investigations"`
}

// Counts reports how many records of each type were loaded.
type Counts struct {
	Cases          int
	Evidence       int
	Suspects       int
	Victims        int
	Investigations int
}

// Total returns the number of records across all types.
func (c Counts) Total() int {
	return c.Cases + c.Evidence + c.Suspects + c.Victims + c.Investigations
}

// Decode reads a fixture from r. Unknown fields, missing IDs and duplicate
// IDs within a type are errors.
func Decode(r io.Reader) (*File, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	var errs []error
	errs = append(errs, checkIDs("cases", f.Cases)...)
	errs = append(errs, checkIDs("evidence", f.Evidence)...)
	errs = append(errs, checkIDs("suspects", f.Suspects)...)
	errs = append(errs, checkIDs("victims", f.Victims)...)
	errs = append(errs, checkIDs("investigations", f.Investigations)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &f, nil
}

// Load decodes a fixture from r and puts every record into cols.
func Load(r io.Reader, cols *memory.Collections) (Counts, error) {
	f, err := Decode(r)
	if err != nil {
		return Counts{}, err
	}
	cols.Cases.Put(f.Cases...)
	cols.Evidence.Put(f.Evidence...)
	cols.Suspects.Put(f.Suspects...)
	cols.Victims.Put(f.Victims...)
	cols.Investigations.Put(f.Investigations...)

	return Counts{
		Cases:          len(f.Cases),
		Evidence:       len(f.Evidence),
		Suspects:       len(f.Suspects),
		Victims:        len(f.Victims),
		Investigations: len(f.Investigations),
	}, nil
}

// YAMLToJSON converts a YAML fixture to the equivalent JSON document.
func YAMLToJSON(r io.Reader) (io.Reader, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding yaml dataset: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting yaml dataset: %w", err)
	}
	return bytes.NewReader(b), nil
}

// LoadFile loads the fixture at path. Files ending in .yaml or .yml are
// read as YAML, anything else as JSON.
func LoadFile(path string, cols *memory.Collections) (Counts, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Counts{}, fmt.Errorf("opening dataset: %w", err)
	}
	defer fh.Close()

	var r io.Reader = fh
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if r, err = YAMLToJSON(fh); err != nil {
			return Counts{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	counts, err := Load(r, cols)
	if err != nil {
		return Counts{}, fmt.Errorf("%s: %w", path, err)
	}
	return counts, nil
}

type keyed interface {
	RecordKey() string
}

func checkIDs[T keyed](section string, recs []T) []error {
	var errs []error
	seen := make(map[string]bool, len(recs))
	for i, r := range recs {
		id := r.RecordKey()
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s[%d]: missing id", section, i))
		case seen[id]:
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate id %q", section, i, id))
		}
		seen[id] = true
	}
	return errs
}
