package types

// Authorizer is the top level interface for end use.
// It answers object-level permission questions for principals against
// entity instances, and manages the model-level catalog behind them.
type Authorizer interface {
	Decider
	Catalog
}

// Decider computes object-level decisions and aggregated permission sets
type Decider interface {
	// Decide tells if the principal holds the permission on the specific
	// entity instance. A nil entity is always false: the engine answers
	// object-level questions only.
	Decide(p Principal, perm Permission, ent Entity) (bool, error)

	// Permissions returns all permissions the principal holds on the
	// entity, from both sources
	Permissions(p Principal, ent Entity) (map[Permission]struct{}, error)

	// UserPermissions returns permissions granted through the user source
	// alone
	UserPermissions(p Principal, ent Entity) (map[Permission]struct{}, error)

	// GroupPermissions returns permissions granted through the group
	// source alone
	GroupPermissions(p Principal, ent Entity) (map[Permission]struct{}, error)

	// ClearCache resets all cached decisions for the principal instance
	ClearCache(p Principal)
}

// PresetPolicy is consulted before the engine's own resolution,
// a true return grants immediately
type PresetPolicy func(authz Authorizer, p Principal, perm Permission, ent Entity) bool
