package filter

import (
	"context"
	"sync"

	"github.com/supremind/olp/types"
)

type definitionPersisterFilter struct {
	types.DefinitionPersister
	changes map[types.DefinitionChange]struct{}
	sync.RWMutex
}

// NewDefinitionPersister checks if the incoming changes are made by the
// inner persister itself, and does not replay them if true
func NewDefinitionPersister(p types.DefinitionPersister) *definitionPersisterFilter {
	return &definitionPersisterFilter{
		DefinitionPersister: p,
		changes:             make(map[types.DefinitionChange]struct{}),
	}
}

// Insert adds a permission definition to the persister
func (f *definitionPersisterFilter) Insert(perm types.Permission) error {
	change := types.DefinitionChange{
		Permission: perm,
		Method:     types.PersistInsert,
	}

	f.Lock()
	f.changes[change] = struct{}{}
	f.Unlock()

	return f.DefinitionPersister.Insert(perm)
}

// Remove a permission definition from the persister
func (f *definitionPersisterFilter) Remove(perm types.Permission) error {
	change := types.DefinitionChange{
		Permission: perm,
		Method:     types.PersistDelete,
	}

	f.Lock()
	f.changes[change] = struct{}{}
	f.Unlock()

	return f.DefinitionPersister.Remove(perm)
}

func (f *definitionPersisterFilter) Watch(ctx context.Context) (<-chan types.DefinitionChange, error) {
	in, e := f.DefinitionPersister.Watch(ctx)
	if e != nil {
		return nil, e
	}

	out := make(chan types.DefinitionChange)

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
