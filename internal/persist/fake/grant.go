package fake

import (
	"context"

	"github.com/supremind/olp/types"
)

type grantPersister struct {
	polices map[types.Holder]map[types.Permission]struct{}
	changes chan types.GrantChange
}

// NewGrantPersister returns a fake grant persister which should not be
// used in real works
func NewGrantPersister(ctx context.Context, init ...types.GrantPolicy) *grantPersister {
	gp := &grantPersister{
		polices: make(map[types.Holder]map[types.Permission]struct{}),
		changes: make(chan types.GrantChange),
	}

	for _, policy := range init {
		if gp.polices[policy.Holder] == nil {
			gp.polices[policy.Holder] = make(map[types.Permission]struct{})
		}
		gp.polices[policy.Holder][policy.Permission] = struct{}{}
	}

	go func() {
		<-ctx.Done()
		close(gp.changes)
	}()

	return gp
}

func (p *grantPersister) Insert(h types.Holder, perm types.Permission) error {
	if p.polices[h] != nil {
		if _, ok := p.polices[h][perm]; ok {
			return nil
		}
	} else {
		p.polices[h] = make(map[types.Permission]struct{})
	}

	p.polices[h][perm] = struct{}{}
	p.changes <- types.GrantChange{
		GrantPolicy: types.GrantPolicy{
			Holder:     h,
			Permission: perm,
		},
		Method: types.PersistInsert,
	}
	return nil
}

func (p *grantPersister) Remove(h types.Holder, perm types.Permission) error {
	if p.polices[h] == nil {
		return nil
	}
	if _, ok := p.polices[h][perm]; !ok {
		return nil
	}

	delete(p.polices[h], perm)
	p.changes <- types.GrantChange{
		GrantPolicy: types.GrantPolicy{
			Holder:     h,
			Permission: perm,
		},
		Method: types.PersistDelete,
	}
	return nil
}

func (p *grantPersister) List() ([]types.GrantPolicy, error) {
	polices := make([]types.GrantPolicy, 0, len(p.polices))
	for h, perms := range p.polices {
		for perm := range perms {
			polices = append(polices, types.GrantPolicy{
				Holder:     h,
				Permission: perm,
			})
		}
	}
	return polices, nil
}

func (p *grantPersister) Watch(context.Context) (<-chan types.GrantChange, error) {
	return p.changes, nil
}
