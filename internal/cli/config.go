package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envFileName    = ".env"
	envPrefix      = "FOODLOG"

	cfgKeyBackend         = "backend"
	cfgKeySupabaseURL     = "supabase_url"
	cfgKeySupabaseAnonKey = "supabase_anon_key"
	cfgKeyDataDir         = "data_dir"
	cfgKeyTimeout         = "timeout"

	defaultBackend = types.BackendSupabase
)

// configFile is the structure written to config.yaml. The anon key is
// never written; it comes from the environment or a .env file.
type configFile struct {
	Backend     string `yaml:"backend"`
	SupabaseURL string `yaml:"supabase_url,omitempty"`
	DataDir     string `yaml:"data_dir,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

// loadConfig loads .env files and reads configDir/config.yaml with
// environment overrides. A missing config.yaml is not an error. Keys bind
// to FOODLOG_<KEY>; the Supabase keys also accept the bare SUPABASE_URL and
// SUPABASE_ANON_KEY.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := loadEnvFiles(envFileName, filepath.Join(configDir, envFileName)); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv(cfgKeySupabaseURL, "FOODLOG_SUPABASE_URL", "SUPABASE_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeySupabaseAnonKey, "FOODLOG_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadEnvFiles loads each existing file into the process environment.
// Variables that are already set win.
func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// writeConfigIfMissing writes cfg to path unless the file already exists.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
