// Package supabase implements the remote Handle over a Supabase project's
// PostgREST endpoint.
package supabase

import (
	"net/http"
	"strings"
	"sync"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// PostgREST mount point below the project URL.
const restPath = "/rest/v1"

// Backend implements types.Handle against a Supabase project. A single
// http.Client is shared by every collection obtained from the backend.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	baseURL  string
	apiKey   string
	client   *http.Client
}

// NewBackend creates a new Supabase backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil client means a fresh http.Client configured from Config.Timeout.
func NewBackend(client *http.Client) *Backend {
	return &Backend{client: client}
}

// Attach records the project address and key.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if b.client == nil {
		b.client = &http.Client{Timeout: config.Timeout}
	}
	b.baseURL = strings.TrimRight(config.SupabaseURL, "/")
	b.apiKey = config.SupabaseAnonKey
	b.attached = true
	return nil
}

// Detach marks the backend detached and drops idle connections.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.client.CloseIdleConnections()
	b.attached = false
	return nil
}

// From returns the named collection.
func (b *Backend) From(name string) (types.Collection, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrHandleDetached
	}
	if !types.ValidIdentifier(name) {
		return nil, types.ErrInvalidCollection
	}
	return &collection{
		backend:  b,
		name:     name,
		endpoint: b.baseURL + restPath + "/" + name,
	}, nil
}

// setHeaders adds the project key both as apikey and as bearer token, the
// way Supabase clients authenticate anonymous requests.
func (b *Backend) setHeaders(req *http.Request) {
	b.mu.RLock()
	key := b.apiKey
	b.mu.RUnlock()

	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("X-Client-Info", clientInfo)
}
