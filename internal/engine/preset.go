package engine

import "github.com/supremind/olp/types"

type engineWithPresets struct {
	presets []types.PresetPolicy
	types.Authorizer
}

func newWithPresetPolicies(authz types.Authorizer, presets ...types.PresetPolicy) *engineWithPresets {
	return &engineWithPresets{
		presets:    presets,
		Authorizer: authz,
	}
}

func (e *engineWithPresets) Decide(p types.Principal, perm types.Permission, ent types.Entity) (bool, error) {
	for _, preset := range e.presets {
		if preset(e, p, perm, ent) {
			return true, nil
		}
	}

	return e.Authorizer.Decide(p, perm, ent)
}
