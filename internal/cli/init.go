package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/foodlog/internal/sqlite"
	"github.com/mesh-intelligence/foodlog/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml and prepare the local store",
		Long: `Init writes config.yaml to the config directory from the current flags,
environment and .env values. With the sqlite backend it also creates the
data directory and its database.

The anon key is never written to config.yaml; keep it in the environment
or in a .env file.`,
		Args: userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, a *app, force bool) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return usageError{fmt.Errorf("backend %q: %w", cfg.Backend, err)}
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	configPath := filepath.Join(a.configDir, configFileExt)
	if force {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove config: %w", err)
		}
	}

	file := configFile{
		Backend:     cfg.Backend,
		SupabaseURL: cfg.SupabaseURL,
		DataDir:     cfg.DataDir,
	}
	if cfg.Timeout > 0 {
		file.Timeout = cfg.Timeout.String()
	}
	if err := writeConfigIfMissing(configPath, file); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if cfg.Backend == types.BackendSQLite {
		// Attach then Detach creates the data directory and database.
		store := sqlite.NewBackend()
		if err := store.Attach(cfg); err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
		if err := store.Detach(); err != nil {
			return fmt.Errorf("finalize storage: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "foodlog initialized (%s, config %s)\n", cfg.Backend, configPath)
	return nil
}
