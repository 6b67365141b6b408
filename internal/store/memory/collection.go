// Package memory provides in-memory reference implementations of the store
// contracts. Entity collections keep Roaring bitmap indexes over their
// enumerated filter attributes and scan pre-folded text for the free-text
// part of a predicate.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/casesearch/internal/relevance"
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// doc is an indexed record.
type doc[T store.Record] struct {
	rec    T
	folded []string
	attrs  types.Attributes
}

// Collection is an indexed, concurrency-safe EntityStore.
type Collection[T store.Record] struct {
	mu sync.RWMutex

	// ID mappings. Deleted slots stay nil so doc IDs are never reused.
	idToDoc map[string]uint32
	docs    []*doc[T]
	live    *roaring.Bitmap

	// Inverted indexes, keyed by upper-cased attribute value
	idxStatus   map[string]*roaring.Bitmap
	idxPriority map[string]*roaring.Bitmap
	idxOfficer  map[string]*roaring.Bitmap
	idxCaseType map[string]*roaring.Bitmap
}

var _ store.EntityStore[types.Case] = (*Collection[types.Case])(nil)

// NewCollection creates an empty collection.
func NewCollection[T store.Record]() *Collection[T] {
	return &Collection[T]{
		idToDoc:     make(map[string]uint32),
		docs:        make([]*doc[T], 0, 64),
		live:        roaring.New(),
		idxStatus:   make(map[string]*roaring.Bitmap),
		idxPriority: make(map[string]*roaring.Bitmap),
		idxOfficer:  make(map[string]*roaring.Bitmap),
		idxCaseType: make(map[string]*roaring.Bitmap),
	}
}

// Put inserts or replaces records by key.
func (c *Collection[T]) Put(recs ...T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range recs {
		key := rec.RecordKey()
		docID, exists := c.idToDoc[key]
		if exists {
			c.unindex(docID)
		} else {
			docID = uint32(len(c.docs))
			c.docs = append(c.docs, nil)
			c.idToDoc[key] = docID
		}

		fields := rec.SearchFields()
		folded := make([]string, len(fields))
		for i, f := range fields {
			folded[i] = relevance.Fold(f)
		}
		d := &doc[T]{rec: rec, folded: folded, attrs: rec.FilterAttributes()}
		c.docs[docID] = d
		c.index(docID, d.attrs)
	}
}

// Delete removes the record with the given key.
func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	docID, exists := c.idToDoc[id]
	if !exists {
		return false
	}
	c.unindex(docID)
	c.docs[docID] = nil
	delete(c.idToDoc, id)
	return true
}

// Len returns the number of live records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int(c.live.GetCardinality())
}

// Get returns the record with the given key.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	docID, exists := c.idToDoc[id]
	if !exists {
		return zero, false, nil
	}
	return c.docs[docID].rec, true, nil
}

// FindMatching plans p's enumerated filters as bitmap intersections, then
// scans the candidates for text and date matches.
func (c *Collection[T]) FindMatching(ctx context.Context, p store.Predicate, order store.OrderBy, limit, offset int) ([]T, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	c.mu.RLock()
	candidates := c.planFilters(p)
	needle := relevance.Fold(p.Text)

	matches := make([]T, 0, min(int(candidates.GetCardinality()), 256))
	iter := candidates.Iterator()
	for iter.HasNext() {
		d := c.docs[iter.Next()]
		if d == nil {
			continue
		}
		if needle != "" && !containsAny(d.folded, needle) {
			continue
		}
		if !p.MatchesCreated(d.rec.CreatedTime()) {
			continue
		}
		matches = append(matches, d.rec)
	}
	c.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	slices.SortStableFunc(matches, func(a, b T) int {
		switch {
		case order.Less(a, b):
			return -1
		case order.Less(b, a):
			return 1
		}
		return 0
	})

	total := len(matches)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return matches[start:end], total, nil
}

// planFilters converts enumerated filters to bitmap operations. Caller holds
// the read lock.
func (c *Collection[T]) planFilters(p store.Predicate) *roaring.Bitmap {
	result := c.live.Clone()

	priorities := make([]string, len(p.Priorities))
	for i, pr := range p.Priorities {
		priorities[i] = string(pr)
	}

	for _, f := range []struct {
		index map[string]*roaring.Bitmap
		keys  []string
	}{
		{c.idxStatus, p.Statuses},
		{c.idxPriority, priorities},
		{c.idxCaseType, p.CaseTypes},
	} {
		if len(f.keys) == 0 {
			continue
		}
		union := roaring.New()
		for _, k := range f.keys {
			if bm := f.index[strings.ToUpper(k)]; bm != nil {
				union.Or(bm)
			}
		}
		result.And(union)
	}

	if p.OfficerID != "" {
		bm := c.idxOfficer[p.OfficerID]
		if bm == nil {
			return roaring.New()
		}
		result.And(bm)
	}

	return result
}

func (c *Collection[T]) index(docID uint32, attrs types.Attributes) {
	c.live.Add(docID)
	addToBitmap(c.idxStatus, strings.ToUpper(attrs.Status), docID)
	addToBitmap(c.idxPriority, strings.ToUpper(string(attrs.Priority)), docID)
	addToBitmap(c.idxCaseType, strings.ToUpper(attrs.CaseType), docID)
	addToBitmap(c.idxOfficer, attrs.AssignedOfficerID, docID)
}

func (c *Collection[T]) unindex(docID uint32) {
	d := c.docs[docID]
	c.live.Remove(docID)
	if d == nil {
		return
	}
	removeFromBitmap(c.idxStatus, strings.ToUpper(d.attrs.Status), docID)
	removeFromBitmap(c.idxPriority, strings.ToUpper(string(d.attrs.Priority)), docID)
	removeFromBitmap(c.idxCaseType, strings.ToUpper(d.attrs.CaseType), docID)
	removeFromBitmap(c.idxOfficer, d.attrs.AssignedOfficerID, docID)
}

// addToBitmap adds a docID to a string-keyed bitmap index. Empty keys are
// not indexed.
func addToBitmap(index map[string]*roaring.Bitmap, key string, docID uint32) {
	if key == "" {
		return
	}
	bm, exists := index[key]
	if !exists {
		bm = roaring.New()
		index[key] = bm
	}
	bm.Add(docID)
}

func removeFromBitmap(index map[string]*roaring.Bitmap, key string, docID uint32) {
	if bm, exists := index[key]; exists {
		bm.Remove(docID)
		if bm.IsEmpty() {
			delete(index, key)
		}
	}
}

func containsAny(folded []string, needle string) bool {
	for _, f := range folded {
		if strings.Contains(f, needle) {
			return true
		}
	}
	return false
}
