package config

// Config represents the complete configuration structure
type Config struct {
	Jellyfin JellyfinConfig `mapstructure:"jellyfin"`
	Filters  FilterConfig   `mapstructure:"filters"`
	Safety   SafetyConfig   `mapstructure:"safety"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// JellyfinConfig holds Jellyfin server connection details
type JellyfinConfig struct {
	URL        string `mapstructure:"url"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	DeviceName string `mapstructure:"device_name"`
}

// FilterConfig contains named filter presets
type FilterConfig map[string]string

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun        bool `mapstructure:"dry_run"`
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
