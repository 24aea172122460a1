package types

import "context"

// DefinitionPersister persists the permission universe to an external storage
type DefinitionPersister interface {
	// Insert adds a permission definition to the persister
	Insert(perm Permission) error

	// Remove a permission definition from the persister
	Remove(perm Permission) error

	// List all definitions from the persister
	List() ([]Permission, error)

	// Watch any changes occurred about the definitions in the persister
	Watch(context.Context) (<-chan DefinitionChange, error)
}

// GrantPersister persists model-level grant polices to an external storage
type GrantPersister interface {
	// Insert adds a grant policy to the persister
	Insert(h Holder, perm Permission) error

	// Remove a grant policy from the persister
	Remove(h Holder, perm Permission) error

	// List all grant polices from the persister
	List() ([]GrantPolicy, error)

	// Watch any changes occurred about the polices in the persister
	Watch(context.Context) (<-chan GrantChange, error)
}

// GrantPolicy is a holder-permission model-level grant
type GrantPolicy struct {
	Holder     Holder
	Permission Permission
}

// GrantChange denotes a changing event about a GrantPolicy
type GrantChange struct {
	GrantPolicy
	Method PersistMethod
}

// DefinitionChange denotes a changing event about a permission definition
type DefinitionChange struct {
	Permission Permission
	Method     PersistMethod
}

// PersistMethod defines what happened about the policies
type PersistMethod string

// possible changes could be happened about policies
const (
	PersistInsert PersistMethod = "insert"
	PersistDelete PersistMethod = "delete"
	PersistUpdate PersistMethod = "update"
)
