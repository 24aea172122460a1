package types

// Principal is an authenticating actor asking for object-level decisions.
// The engine consumes it as a capability set; the identity store owns the
// actual implementation.
type Principal interface {
	// ID is unique and stable across reloads
	ID() string

	// IsActive tells if the principal may be granted anything at all
	IsActive() bool

	// IsSuperuser tells if the principal bypasses object-level checks in
	// default policy mode
	IsSuperuser() bool

	// Groups returns all groups the principal belongs to
	Groups() []Group

	// DecisionCache returns the decision memo scoped to this instance.
	// A reloaded principal is a new instance with an empty cache.
	DecisionCache() *DecisionCache
}

var _ Principal = (*User)(nil)

// User is a ready-made Principal implementation.
// The zero value is an active, non-super user with no memberships; the
// decision cache is created lazily on first use and is never shared
// between instances.
type User struct {
	Name        string
	Inactive    bool
	Super       bool
	Memberships []Group

	cache DecisionCache
}

func (u *User) ID() string {
	return u.Name
}

func (u *User) IsActive() bool {
	return !u.Inactive
}

func (u *User) IsSuperuser() bool {
	return u.Super
}

func (u *User) Groups() []Group {
	return u.Memberships
}

func (u *User) DecisionCache() *DecisionCache {
	return &u.cache
}

func (u *User) String() string {
	return UserRef(u.Name).String()
}
