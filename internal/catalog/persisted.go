package catalog

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/supremind/olp/internal/persist/filter"
	"github.com/supremind/olp/types"
)

// persistedCatalog persists definitions and grants with the given
// persisters, and keeps the inner catalog synced with external changes
type persistedCatalog struct {
	types.Catalog
	definitions types.DefinitionPersister
	grants      types.GrantPersister
	log         logr.Logger
}

func newPersistedCatalog(ctx context.Context, inner types.Catalog, dp types.DefinitionPersister, gp types.GrantPersister, l logr.Logger) (*persistedCatalog, error) {
	c := &persistedCatalog{
		Catalog:     inner,
		definitions: filter.NewDefinitionPersister(dp),
		grants:      filter.NewGrantPersister(gp),
		log:         l,
	}

	if e := c.loadPersisted(); e != nil {
		return nil, e
	}
	if e := c.startWatching(ctx); e != nil {
		return nil, e
	}

	return c, nil
}

func (c *persistedCatalog) loadPersisted() error {
	c.log.V(4).Info("load persisted polices")

	perms, e := c.definitions.List()
	if e != nil {
		return e
	}
	for _, perm := range perms {
		if e := c.Catalog.Define(perm); e != nil {
			return e
		}
	}

	polices, e := c.grants.List()
	if e != nil {
		return e
	}
	for _, policy := range polices {
		if e := c.Catalog.Grant(policy.Holder, policy.Permission); e != nil {
			return e
		}
	}

	return nil
}

func (c *persistedCatalog) startWatching(ctx context.Context) error {
	defChanges, e := c.definitions.Watch(ctx)
	if e != nil {
		return e
	}
	grantChanges, e := c.grants.Watch(ctx)
	if e != nil {
		return e
	}

	go func() {
		for {
			select {
			case change := <-defChanges:
				if e := c.coordinateDefinitionChange(change); e != nil {
					c.log.Error(e, "coordinate definition changes")
				}
			case change := <-grantChanges:
				if e := c.coordinateGrantChange(change); e != nil {
					c.log.Error(e, "coordinate grant changes")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (c *persistedCatalog) coordinateDefinitionChange(change types.DefinitionChange) error {
	c.log.V(4).Info("coordinate definition changes", "change", change)

	switch change.Method {
	case types.PersistInsert, types.PersistUpdate:
		return c.Catalog.Define(change.Permission)
	case types.PersistDelete:
		return c.Catalog.Discard(change.Permission)
	}

	return fmt.Errorf("%w: definition persister changes: %s", types.ErrUnsupportedChange, change.Method)
}

func (c *persistedCatalog) coordinateGrantChange(change types.GrantChange) error {
	c.log.V(4).Info("coordinate grant changes", "change", change)

	switch change.Method {
	case types.PersistInsert, types.PersistUpdate:
		return c.Catalog.Grant(change.Holder, change.Permission)
	case types.PersistDelete:
		return c.Catalog.Revoke(change.Holder, change.Permission)
	}

	return fmt.Errorf("%w: grant persister changes: %s", types.ErrUnsupportedChange, change.Method)
}

// Define registers a permission definition and persists it
func (c *persistedCatalog) Define(perm types.Permission) error {
	c.log.V(4).Info("define", "permission", perm)

	if e := c.definitions.Insert(perm); e != nil {
		return e
	}
	return c.Catalog.Define(perm)
}

// Discard removes a permission definition and persists the removal
func (c *persistedCatalog) Discard(perm types.Permission) error {
	c.log.V(4).Info("discard", "permission", perm)

	if e := c.definitions.Remove(perm); e != nil {
		return e
	}
	return c.Catalog.Discard(perm)
}

// Grant gives the holder the permission and persists the policy
func (c *persistedCatalog) Grant(h types.Holder, perm types.Permission) error {
	c.log.V(4).Info("grant", "holder", h, "permission", perm)

	if e := c.grants.Insert(h, perm); e != nil {
		return e
	}
	return c.Catalog.Grant(h, perm)
}

// Revoke removes a model-level grant and persists the removal
func (c *persistedCatalog) Revoke(h types.Holder, perm types.Permission) error {
	c.log.V(4).Info("revoke", "holder", h, "permission", perm)

	if e := c.grants.Remove(h, perm); e != nil {
		return e
	}
	return c.Catalog.Revoke(h, perm)
}
