// Package catalog provides the model-level permission catalog consumed by
// the object-level decision engine: the universe of permissions defined
// per entity kind, and type-wide grants to users and groups.
package catalog

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/supremind/olp/types"
)

// New creates a concurrent safe, persisted catalog
func New(ctx context.Context, dp types.DefinitionPersister, gp types.GrantPersister, l logr.Logger) (types.Catalog, error) {
	c, e := newPersistedCatalog(ctx, newSyncedCatalog(newThinCatalog()), dp, gp, l)
	if e != nil {
		return nil, e
	}
	return c, nil
}

// NewInMemory creates a concurrent safe catalog without persistence
func NewInMemory() types.Catalog {
	return newSyncedCatalog(newThinCatalog())
}
