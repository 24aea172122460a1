package catalog

import (
	"sync"

	"github.com/supremind/olp/types"
)

var _ types.Catalog = (*syncedCatalog)(nil)

// syncedCatalog makes the given catalog be safe in concurrent usages
type syncedCatalog struct {
	c types.Catalog
	sync.RWMutex
}

func newSyncedCatalog(c types.Catalog) *syncedCatalog {
	return &syncedCatalog{c: c}
}

func (s *syncedCatalog) Define(perm types.Permission) error {
	s.Lock()
	defer s.Unlock()
	return s.c.Define(perm)
}

func (s *syncedCatalog) Discard(perm types.Permission) error {
	s.Lock()
	defer s.Unlock()
	return s.c.Discard(perm)
}

func (s *syncedCatalog) Grant(h types.Holder, perm types.Permission) error {
	s.Lock()
	defer s.Unlock()
	return s.c.Grant(h, perm)
}

func (s *syncedCatalog) Revoke(h types.Holder, perm types.Permission) error {
	s.Lock()
	defer s.Unlock()
	return s.c.Revoke(h, perm)
}

func (s *syncedCatalog) HasModelPermission(p types.Principal, perm types.Permission) (bool, error) {
	s.RLock()
	defer s.RUnlock()
	return s.c.HasModelPermission(p, perm)
}

func (s *syncedCatalog) PermissionsOf(kind string) (map[types.Permission]struct{}, error) {
	s.RLock()
	defer s.RUnlock()
	return s.c.PermissionsOf(kind)
}
