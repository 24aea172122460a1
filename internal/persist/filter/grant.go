package filter

import (
	"context"
	"sync"

	"github.com/supremind/olp/types"
)

type grantPersisterFilter struct {
	types.GrantPersister
	changes map[types.GrantChange]struct{}
	sync.RWMutex
}

// NewGrantPersister checks if the incoming changes are made by the inner
// persister itself, and does not replay them if true
func NewGrantPersister(p types.GrantPersister) *grantPersisterFilter {
	return &grantPersisterFilter{
		GrantPersister: p,
		changes:        make(map[types.GrantChange]struct{}),
	}
}

// Insert adds a grant policy to the persister
func (f *grantPersisterFilter) Insert(h types.Holder, perm types.Permission) error {
	change := types.GrantChange{
		GrantPolicy: types.GrantPolicy{
			Holder:     h,
			Permission: perm,
		},
		Method: types.PersistInsert,
	}

	f.Lock()
	f.changes[change] = struct{}{}
	f.Unlock()

	return f.GrantPersister.Insert(h, perm)
}

// Remove a grant policy from the persister
func (f *grantPersisterFilter) Remove(h types.Holder, perm types.Permission) error {
	change := types.GrantChange{
		GrantPolicy: types.GrantPolicy{
			Holder:     h,
			Permission: perm,
		},
		Method: types.PersistDelete,
	}

	f.Lock()
	f.changes[change] = struct{}{}
	f.Unlock()

	return f.GrantPersister.Remove(h, perm)
}

func (f *grantPersisterFilter) Watch(ctx context.Context) (<-chan types.GrantChange, error) {
	in, e := f.GrantPersister.Watch(ctx)
	if e != nil {
		return nil, e
	}

	out := make(chan types.GrantChange)

	go func() {
		defer close(out)

		for change := range in {
			f.RLock()
			_, ok := f.changes[change]
			f.RUnlock()

			if ok {
				f.Lock()
				delete(f.changes, change)
				f.Unlock()
			} else {
				out <- change
			}
		}
	}()

	return out, nil
}
