package types

import (
	"errors"
	"time"
)

// Config holds backend selection and connection parameters for Handle.Attach.
type Config struct {
	Backend         string        `json:"backend" yaml:"backend"`
	SupabaseURL     string        `json:"supabase_url" yaml:"supabase_url"`
	SupabaseAnonKey string        `json:"supabase_anon_key" yaml:"supabase_anon_key"`
	DataDir         string        `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
	Timeout         time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Supported backend names.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSupabase: true,
	BackendSQLite:   true,
}

// Validate checks that the Config names a known backend. The service address
// and credential are deliberately not checked: a bad value surfaces as an
// error from the first remote call.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
