// Package sqlite provides the public API for the local SQLite handle.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/foodlog/internal/sqlite"
	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".foodlog-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Handle {
	return sqlite.NewBackend()
}
