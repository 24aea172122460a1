package olp

import "github.com/supremind/olp/types"

// EveryoneCan specify that any active principal may perform the listed
// actions on entities of the kind, regardless of grants and gates
func EveryoneCan(kind string, actions ...string) types.PresetPolicy {
	return func(_ types.Authorizer, p types.Principal, perm types.Permission, ent types.Entity) bool {
		if ent == nil || !p.IsActive() {
			return false
		}
		if perm.Namespace() != kind {
			return false
		}

		for _, act := range actions {
			if perm.Action() == act {
				return true
			}
		}

		return false
	}
}

// TrustedUser specify that the named principal passes every object-level
// check while active
func TrustedUser(name string) types.PresetPolicy {
	return func(_ types.Authorizer, p types.Principal, _ types.Permission, ent types.Entity) bool {
		return ent != nil && p.IsActive() && p.ID() == name
	}
}
