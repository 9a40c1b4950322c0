package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. Any key can be overridden
// through the environment with the JELLYCTL_ prefix, e.g.
// JELLYCTL_JELLYFIN_PASSWORD overrides jellyfin.password.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("JELLYCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jellyctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/jellyctl/")
	}

	// Read config file; a missing file is fine when the environment
	// provides the connection details.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Jellyfin defaults. The empty defaults register the keys with viper
	// so environment-only overrides survive Unmarshal.
	v.SetDefault("jellyfin.url", "http://localhost:8096")
	v.SetDefault("jellyfin.username", "")
	v.SetDefault("jellyfin.password", "")
	v.SetDefault("jellyfin.device_name", "")

	// Safety defaults
	v.SetDefault("safety.dry_run", false)
	v.SetDefault("safety.confirm_delete", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Jellyfin.URL == "" {
		return fmt.Errorf("jellyfin.url is required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
