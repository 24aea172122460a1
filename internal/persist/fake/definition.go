package fake

import (
	"context"

	"github.com/supremind/olp/types"
)

type definitionPersister struct {
	perms   map[types.Permission]struct{}
	changes chan types.DefinitionChange
}

// NewDefinitionPersister returns a fake definition persister which should
// not be used in real works
func NewDefinitionPersister(ctx context.Context, init ...types.Permission) *definitionPersister {
	dp := &definitionPersister{
		perms:   make(map[types.Permission]struct{}, len(init)),
		changes: make(chan types.DefinitionChange),
	}

	for _, perm := range init {
		dp.perms[perm] = struct{}{}
	}

	go func() {
		<-ctx.Done()
		close(dp.changes)
	}()

	return dp
}

func (p *definitionPersister) Insert(perm types.Permission) error {
	if _, ok := p.perms[perm]; ok {
		return nil
	}

	p.perms[perm] = struct{}{}
	p.changes <- types.DefinitionChange{
		Permission: perm,
		Method:     types.PersistInsert,
	}
	return nil
}

func (p *definitionPersister) Remove(perm types.Permission) error {
	if _, ok := p.perms[perm]; !ok {
		return nil
	}

	delete(p.perms, perm)
	p.changes <- types.DefinitionChange{
		Permission: perm,
		Method:     types.PersistDelete,
	}
	return nil
}

func (p *definitionPersister) List() ([]types.Permission, error) {
	perms := make([]types.Permission, 0, len(p.perms))
	for perm := range p.perms {
		perms = append(perms, perm)
	}
	return perms, nil
}

func (p *definitionPersister) Watch(context.Context) (<-chan types.DefinitionChange, error) {
	return p.changes, nil
}
