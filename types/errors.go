package types

import "errors"

// exported errors
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidPermission = errors.New("invalid permission, it should be in the namespace.action format")
	ErrInvalidHolder     = errors.New("invalid holder, it should be a UserRef or GroupRef")
	ErrUnsupportedChange = errors.New("persister changes in a way not supported")
)
