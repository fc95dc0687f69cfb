package types

import "errors"

// Handle is a reusable connection to a record store. One handle is attached
// at startup and shared by every record operation; implementations must be
// safe for concurrent use.
type Handle interface {
	// Attach connects the handle to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, From returns ErrHandleDetached.
	Detach() error

	// From returns the Collection with the given name.
	// Returns ErrInvalidCollection if the name is not a plain identifier.
	From(name string) (Collection, error)
}

// Handle lifecycle errors.
var (
	ErrHandleDetached    = errors.New("handle is detached")
	ErrAlreadyAttached   = errors.New("handle is already attached")
	ErrInvalidCollection = errors.New("invalid collection name")
)
