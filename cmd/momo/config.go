// Config loading for the momo CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/krishna-stha/MOMO/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeySupabaseURL = "supabase_url"
	cfgKeyAnonKey     = "supabase_anon_key"
	cfgKeyDataDir     = "data_dir"

	// Environment variable overrides, for CI and one-off runs.
	envSupabaseURL = "MOMO_SUPABASE_URL"
	envAnonKey     = "MOMO_SUPABASE_ANON_KEY"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Momo CLI configuration

# Backend endpoint and anonymous API key
supabase_url:
supabase_anon_key:

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// loadConfig reads config.yaml from the config directory using Viper,
// creating the directory and a default file on first run, and validates
// the result. Environment overrides beat the file.
func loadConfig(configDir string) (types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.BindEnv(cfgKeySupabaseURL, envSupabaseURL)
	v.BindEnv(cfgKeyAnonKey, envAnonKey)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		SupabaseURL:     v.GetString(cfgKeySupabaseURL),
		SupabaseAnonKey: v.GetString(cfgKeyAnonKey),
		DataDir:         v.GetString(cfgKeyDataDir),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("%w (set it in %s)", err, filepath.Join(configDir, configFileExt))
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
