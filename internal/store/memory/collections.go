package memory

import (
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// Collections holds one in-memory collection per entity type.
type Collections struct {
	Cases          *Collection[types.Case]
	Evidence       *Collection[types.Evidence]
	Suspects       *Collection[types.Suspect]
	Victims        *Collection[types.Victim]
	Investigations *Collection[types.Investigation]
}

// NewCollections creates five empty collections.
func NewCollections() *Collections {
	return &Collections{
		Cases:          NewCollection[types.Case](),
		Evidence:       NewCollection[types.Evidence](),
		Suspects:       NewCollection[types.Suspect](),
		Victims:        NewCollection[types.Victim](),
		Investigations: NewCollection[types.Investigation](),
	}
}

// Entities exposes the collections through the store contracts.
func (c *Collections) Entities() store.Entities {
	return store.Entities{
		Cases:          c.Cases,
		Evidence:       c.Evidence,
		Suspects:       c.Suspects,
		Victims:        c.Victims,
		Investigations: c.Investigations,
	}
}

// Len returns the total number of records across all collections.
func (c *Collections) Len() int {
	return c.Cases.Len() + c.Evidence.Len() + c.Suspects.Len() + c.Victims.Len() + c.Investigations.Len()
}
