// Package cli implements the foodlog command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/foodlog/internal/paths"
	"github.com/mesh-intelligence/foodlog/pkg/connect"
	"github.com/mesh-intelligence/foodlog/pkg/foodlog"
	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// usageError marks a malformed command line.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app holds global flag values and state built before a subcommand runs.
type app struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool

	config *viper.Viper
	logger *slog.Logger
}

// NewRootCmd creates the top-level "foodlog" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "foodlog",
		Short:   "Record and query food log entries",
		Long:    "foodlog lists, creates, updates and deletes food log entries\nin a Supabase project or a local store.",
		Version: foodlog.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			a.configDir = configDir

			a.config, err = loadConfig(configDir)
			return err
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.dataDir, "data-dir", "", "local store directory (default: $(CWD)/.foodlog-db)")
	pf.StringVar(&a.backend, "backend", "", "backend: supabase or sqlite (default from config)")
	pf.BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	os.Exit(ExitCode(NewRootCmd().Execute()))
}

// ExitCode maps a command error to the process exit code: 1 for missing
// arguments and malformed command lines, 2 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var verr *types.ValidationError
	var uerr usageError
	if errors.As(err, &verr) || errors.As(err, &uerr) {
		return exitUserError
	}
	return exitSysError
}

// userArgs wraps a cobra argument validator so its failures count as
// usage errors.
func userArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// storeConfig assembles the handle configuration from flags and viper.
func (a *app) storeConfig() (types.Config, error) {
	backend := a.backend
	if backend == "" {
		backend = a.config.GetString(cfgKeyBackend)
	}

	cfg := types.Config{
		Backend:         backend,
		SupabaseURL:     a.config.GetString(cfgKeySupabaseURL),
		SupabaseAnonKey: a.config.GetString(cfgKeySupabaseAnonKey),
		Timeout:         a.config.GetDuration(cfgKeyTimeout),
	}
	if backend == types.BackendSQLite {
		dataDir, err := paths.ResolveDataDir(a.dataDir, a.config.GetString(cfgKeyDataDir))
		if err != nil {
			return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// openService connects to the configured store. The caller must call the
// returned close function.
func (a *app) openService() (*foodlog.Service, func(), error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, nil, err
	}
	handle, err := connect.Open(cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := handle.Detach(); err != nil {
			a.logger.Warn("detach failed", "err", err)
		}
	}
	return foodlog.New(handle, foodlog.Options{Logger: a.logger}), closeFn, nil
}
