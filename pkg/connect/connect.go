// Package connect builds the single shared handle used by the record
// functions.
package connect

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/foodlog/pkg/sqlite"
	"github.com/mesh-intelligence/foodlog/pkg/supabase"
	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// keyPrefixLen is how much of the access key the startup log shows.
const keyPrefixLen = 8

// Open constructs the backend named by cfg.Backend (supabase when empty),
// logs the service address and a masked key, and attaches it. The returned
// handle is meant to be created once per process and shared; the caller
// detaches it on shutdown.
func Open(cfg types.Config, logger *slog.Logger) (types.Handle, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendSupabase
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var handle types.Handle
	switch cfg.Backend {
	case types.BackendSQLite:
		logger.Info("opening food log store", "backend", cfg.Backend, "data_dir", cfg.DataDir)
		handle = sqlite.NewBackend()
	default:
		logger.Info("opening food log store",
			"backend", cfg.Backend,
			"supabase_url", cfg.SupabaseURL,
			"supabase_anon_key", MaskKey(cfg.SupabaseAnonKey),
		)
		handle = supabase.NewBackend(nil)
	}

	if err := handle.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach %s: %w", cfg.Backend, err)
	}
	return handle, nil
}

// MaskKey keeps the first few characters of key and replaces the rest.
// An empty key is reported as "(empty)" so a missing value is visible.
func MaskKey(key string) string {
	if key == "" {
		return "(empty)"
	}
	if len(key) <= keyPrefixLen {
		return "****"
	}
	return key[:keyPrefixLen] + "****"
}
