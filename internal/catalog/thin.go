package catalog

import (
	"fmt"

	"github.com/supremind/olp/types"
)

var _ types.Catalog = (*thinCatalog)(nil)

// thinCatalog knows permission definitions and direct holder grants
type thinCatalog struct {
	byKind   map[string]map[types.Permission]struct{}
	byHolder map[types.Holder]map[types.Permission]struct{}
}

func newThinCatalog() *thinCatalog {
	return &thinCatalog{
		byKind:   make(map[string]map[types.Permission]struct{}),
		byHolder: make(map[types.Holder]map[types.Permission]struct{}),
	}
}

func (c *thinCatalog) Define(perm types.Permission) error {
	if !perm.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidPermission, perm)
	}

	kind := perm.Namespace()
	if _, ok := c.byKind[kind]; !ok {
		c.byKind[kind] = make(map[types.Permission]struct{})
	}
	c.byKind[kind][perm] = struct{}{}

	return nil
}

func (c *thinCatalog) Discard(perm types.Permission) error {
	kind := perm.Namespace()
	if _, ok := c.byKind[kind][perm]; !ok {
		return fmt.Errorf("%w: definition of %s", types.ErrNotFound, perm)
	}

	delete(c.byKind[kind], perm)
	if len(c.byKind[kind]) == 0 {
		delete(c.byKind, kind)
	}

	for _, perms := range c.byHolder {
		delete(perms, perm)
	}

	return nil
}

func (c *thinCatalog) Grant(h types.Holder, perm types.Permission) error {
	if _, ok := c.byKind[perm.Namespace()][perm]; !ok {
		return fmt.Errorf("%w: definition of %s", types.ErrNotFound, perm)
	}

	if _, ok := c.byHolder[h]; !ok {
		c.byHolder[h] = make(map[types.Permission]struct{})
	}
	c.byHolder[h][perm] = struct{}{}

	return nil
}

func (c *thinCatalog) Revoke(h types.Holder, perm types.Permission) error {
	if _, ok := c.byHolder[h][perm]; !ok {
		return fmt.Errorf("%w: grant of %s to %s", types.ErrNotFound, perm, h)
	}

	delete(c.byHolder[h], perm)
	if len(c.byHolder[h]) == 0 {
		delete(c.byHolder, h)
	}

	return nil
}

func (c *thinCatalog) HasModelPermission(p types.Principal, perm types.Permission) (bool, error) {
	if !p.IsActive() {
		return false, nil
	}
	if _, ok := c.byKind[perm.Namespace()][perm]; !ok {
		// unknown permissions are never held
		return false, nil
	}
	if p.IsSuperuser() {
		return true, nil
	}

	if _, ok := c.byHolder[types.UserRef(p.ID())][perm]; ok {
		return true, nil
	}
	for _, group := range p.Groups() {
		if _, ok := c.byHolder[group.Ref()][perm]; ok {
			return true, nil
		}
	}

	return false, nil
}

func (c *thinCatalog) PermissionsOf(kind string) (map[types.Permission]struct{}, error) {
	perms := make(map[types.Permission]struct{}, len(c.byKind[kind]))
	for perm := range c.byKind[kind] {
		perms[perm] = struct{}{}
	}
	return perms, nil
}
