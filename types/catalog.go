package types

// Catalog answers the model-level permission question: the universe of
// permissions defined per entity kind, and whether a principal holds one
// of them type-wide, via direct grant, group grant, or superuser status
type Catalog interface {
	CatalogWriter
	CatalogReader
}

// CatalogReader is the part of the catalog the decision engine consumes
type CatalogReader interface {
	// HasModelPermission tells if the principal holds the permission at
	// the type level. An unknown permission is never held.
	HasModelPermission(p Principal, perm Permission) (bool, error)

	// PermissionsOf returns all permissions defined for an entity kind
	PermissionsOf(kind string) (map[Permission]struct{}, error)
}

// CatalogWriter manages permission definitions and model-level grants
type CatalogWriter interface {
	// Define registers a permission; its namespace names the entity kind
	Define(perm Permission) error

	// Discard removes a permission definition and all grants of it
	Discard(perm Permission) error

	// Grant gives the holder the permission at the type level
	Grant(h Holder, perm Permission) error

	// Revoke removes a model-level grant from the holder
	Revoke(h Holder, perm Permission) error
}
