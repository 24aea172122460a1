package types

import "strings"

// Permission is a fully qualified permission identifier in the
// "namespace.action" format, e.g. "blog.change_article".
// The namespace is the owning domain of an entity kind, the action is the
// code gates are asked about.
type Permission string

// Namespace returns the part before the first dot
func (p Permission) Namespace() string {
	if i := strings.IndexByte(string(p), '.'); i >= 0 {
		return string(p)[:i]
	}
	return ""
}

// Action returns the part after the first dot
func (p Permission) Action() string {
	if i := strings.IndexByte(string(p), '.'); i >= 0 {
		return string(p)[i+1:]
	}
	return ""
}

// Valid tells if the permission is in the "namespace.action" format with
// both parts non-empty
func (p Permission) Valid() bool {
	return p.Namespace() != "" && p.Action() != ""
}

func (p Permission) String() string {
	return string(p)
}

// ParsePermission parses a qualified permission identifier
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.Valid() {
		return "", ErrInvalidPermission
	}
	return p, nil
}
