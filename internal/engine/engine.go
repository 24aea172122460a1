// Package engine implements the object-level decision engine.
// It layers instance-level grant/deny logic, contributed by the entities
// themselves through optional gates, on top of the model-level catalog.
package engine

import (
	"github.com/go-logr/logr"

	"github.com/supremind/olp/types"
)

var _ types.Authorizer = (*engine)(nil)

type engine struct {
	types.Catalog
	universal bool
	log       logr.Logger
}

// New creates an object-level authorizer upon the given catalog.
// In universal mode superusers are subject to the same instance-level
// resolution as anyone else; by default they bypass it.
func New(cat types.Catalog, universal bool, l logr.Logger, presets ...types.PresetPolicy) types.Authorizer {
	var a types.Authorizer
	a = &engine{
		Catalog:   cat,
		universal: universal,
		log:       l,
	}

	a = newWithPresetPolicies(a, presets...)

	return a
}

// Decide tells if the principal holds the permission on the specific
// entity instance
func (e *engine) Decide(p types.Principal, perm types.Permission, ent types.Entity) (bool, error) {
	e.log.V(6).Info("decide", "principal", p.ID(), "permission", perm, "entity", entityID(ent))

	if ent == nil {
		// not dealing with non-object permissions
		return false, nil
	}
	if !p.IsActive() {
		return false, nil
	}
	if p.IsSuperuser() && !e.universal {
		return true, nil
	}

	user, err := e.resolve(p, types.SourceUser, perm, ent)
	if err != nil {
		return false, err
	}
	if user == types.Granted {
		// a user-source grant settles it, the group source is neither
		// resolved nor cached
		return true, nil
	}

	group, err := e.resolve(p, types.SourceGroup, perm, ent)
	if err != nil {
		return false, err
	}

	return conclude(user, group), nil
}

// Permissions returns all permissions the principal holds on the entity,
// from both sources
func (e *engine) Permissions(p types.Principal, ent types.Entity) (map[types.Permission]struct{}, error) {
	return e.permissions(p, ent, "")
}

// UserPermissions returns permissions granted through the user source alone
func (e *engine) UserPermissions(p types.Principal, ent types.Entity) (map[types.Permission]struct{}, error) {
	return e.permissions(p, ent, types.SourceUser)
}

// GroupPermissions returns permissions granted through the group source alone
func (e *engine) GroupPermissions(p types.Principal, ent types.Entity) (map[types.Permission]struct{}, error) {
	return e.permissions(p, ent, types.SourceGroup)
}

// ClearCache resets all cached decisions for the principal instance
func (e *engine) ClearCache(p types.Principal) {
	e.log.V(4).Info("clear cache", "principal", p.ID())

	p.DecisionCache().Reset()
}

// resolve computes the decision of one source for one permission on one
// entity, memoizing it in the principal's cache
func (e *engine) resolve(p types.Principal, src types.Source, perm types.Permission, ent types.Entity) (types.Decision, error) {
	cache := p.DecisionCache()
	key := types.CacheKey{Source: src, Permission: perm, EntityID: ent.ID()}

	if d, ok := cache.Lookup(key); ok {
		return d, nil
	}

	held, err := e.Catalog.HasModelPermission(p, perm)
	if err != nil {
		return types.NoOpinion, err
	}

	var d types.Decision
	if !held {
		// model-level permission is a strict prerequisite for any
		// object-level grant
		d = types.Denied
	} else {
		switch src {
		case types.SourceUser:
			if gate, ok := ent.(types.UserGate); ok {
				d = gate.UserCan(p, perm.Action())
			}
		case types.SourceGroup:
			if gate, ok := ent.(types.GroupGate); ok {
				d = gate.GroupCan(p.Groups(), perm.Action())
			}
		}
	}

	cache.Store(key, d)
	return d, nil
}

func (e *engine) permissions(p types.Principal, ent types.Entity, from types.Source) (map[types.Permission]struct{}, error) {
	e.log.V(6).Info("permissions", "principal", p.ID(), "entity", entityID(ent), "from", from)

	perms := make(map[types.Permission]struct{})
	if ent == nil || !p.IsActive() {
		return perms, nil
	}

	universe, err := e.Catalog.PermissionsOf(ent.Kind())
	if err != nil {
		return nil, err
	}

	if p.IsSuperuser() && !e.universal {
		for perm := range universe {
			perms[perm] = struct{}{}
		}
		return perms, nil
	}

	for perm := range universe {
		var user, group types.Decision

		if from != types.SourceGroup {
			user, err = e.resolve(p, types.SourceUser, perm, ent)
			if err != nil {
				return nil, err
			}
		}
		if user != types.Granted && from != types.SourceUser {
			group, err = e.resolve(p, types.SourceGroup, perm, ent)
			if err != nil {
				return nil, err
			}
		}

		if conclude(user, group) {
			perms[perm] = struct{}{}
		}
	}

	return perms, nil
}

// conclude combines the per-source decisions: a grant from either source
// wins, and two no-opinions fall back to the already established
// model-level permission. One explicit deny beside one no-opinion denies.
func conclude(user, group types.Decision) bool {
	return user == types.Granted || group == types.Granted ||
		(user == types.NoOpinion && group == types.NoOpinion)
}

func entityID(ent types.Entity) string {
	if ent == nil {
		return ""
	}
	return ent.ID()
}
