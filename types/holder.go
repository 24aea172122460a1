package types

import "strings"

// Holder is something a model-level grant can be attached to:
// a user directly, or a group
// Holder is not expecting custom implementations
type Holder interface {
	// String method is used to be serialized when persisting
	String() string
	holder() string
}

// UserRef names a user as a grant holder
type UserRef string

func (u UserRef) String() string {
	return "user:" + string(u)
}

func (u UserRef) holder() string {
	return u.String()
}

// GroupRef names a group as a grant holder
type GroupRef string

func (g GroupRef) String() string {
	return "group:" + string(g)
}

func (g GroupRef) holder() string {
	return g.String()
}

// Group is a named collection of users a principal may belong to
type Group string

func (g Group) String() string {
	return "group:" + string(g)
}

// Ref returns the group as a grant holder
func (g Group) Ref() GroupRef {
	return GroupRef(g)
}

// ParseHolder parses a serialized Holder
func ParseHolder(s string) (Holder, error) {
	switch {
	case strings.HasPrefix(s, "user:"):
		return UserRef(strings.TrimPrefix(s, "user:")), nil
	case strings.HasPrefix(s, "group:"):
		return GroupRef(strings.TrimPrefix(s, "group:")), nil
	}

	return nil, ErrInvalidHolder
}
