package types

import "fmt"

// ValidationError reports a required argument that was missing. It is
// raised before any request reaches the store.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// RemoteError carries a failure reported by the store or the transport in
// front of it. The message is the cause's message, unchanged.
type RemoteError struct {
	Op  string // list, create, update or delete
	Err error
}

func (e *RemoteError) Error() string {
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
