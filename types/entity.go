package types

// Entity is any domain object a permission can be checked against
type Entity interface {
	// ID is the stable instance identity, collision-free within one
	// principal's cache lifetime
	ID() string

	// Kind is the type descriptor, matching the namespace of the
	// permissions defined for it
	Kind() string
}

// UserGate is implemented by entities that refine access per acting user.
// Returning the zero value Decision reports no opinion for the action.
type UserGate interface {
	// UserCan decides if the acting principal may perform the action on
	// this instance
	UserCan(p Principal, action string) Decision
}

// GroupGate is implemented by entities that refine access per the acting
// principal's group memberships.
// Returning the zero value Decision reports no opinion for the action.
type GroupGate interface {
	// GroupCan decides if a principal with the given memberships may
	// perform the action on this instance
	GroupCan(groups []Group, action string) Decision
}
