// Package supabase provides the public API for the Supabase handle.
package supabase

import (
	"net/http"

	"github.com/mesh-intelligence/foodlog/internal/supabase"
	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// APIError is an error response from the Supabase REST endpoint.
type APIError = supabase.APIError

// NewBackend creates a new Supabase backend instance. A nil client builds
// one from Config.Timeout on Attach.
//
// Example:
//
//	backend := supabase.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend:         types.BackendSupabase,
//	    SupabaseURL:     "https://<project>.supabase.co",
//	    SupabaseAnonKey: anonKey,
//	})
//	defer backend.Detach()
func NewBackend(client *http.Client) types.Handle {
	return supabase.NewBackend(client)
}
