// Package config loads the nodelens configuration from .nodelens/config.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"nodelens/internal/paths"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = 1

// EnvPrefix prefixes environment overrides, e.g. NODELENS_WATCH_DEBOUNCEMS.
const EnvPrefix = "NODELENS"

// Config represents the complete nodelens configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Inspector InspectorConfig `json:"inspector" mapstructure:"inspector"`
	Watch     WatchConfig     `json:"watch" mapstructure:"watch"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
	Output    OutputConfig    `json:"output" mapstructure:"output"`
}

// InspectorConfig contains defaults for the node inspector
type InspectorConfig struct {
	// ShowAllAttributes is used when no setting has been persisted yet
	ShowAllAttributes bool `json:"showAllAttributes" mapstructure:"showAllAttributes"`
	// PreserveScopeSelection keeps the scope tree selection across refocus in watch mode
	PreserveScopeSelection bool `json:"preserveScopeSelection" mapstructure:"preserveScopeSelection"`
}

// WatchConfig contains file watching configuration
type WatchConfig struct {
	DebounceMs int `json:"debounceMs" mapstructure:"debounceMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format     string `json:"format" mapstructure:"format"`
	Level      string `json:"level" mapstructure:"level"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
}

// OutputConfig contains CLI output configuration
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Inspector: InspectorConfig{
			ShowAllAttributes:      false,
			PreserveScopeSelection: true,
		},
		Watch: WatchConfig{
			DebounceMs: 200,
		},
		Logging: LoggingConfig{
			Format:     "human",
			Level:      "warn",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
		Output: OutputConfig{
			Format: "human",
		},
	}
}

// LoadConfig loads configuration from <root>/.nodelens/config.json. Missing
// keys keep their defaults; a missing file yields the default configuration.
// Environment variables such as NODELENS_OUTPUT_FORMAT override both.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(paths.Dir(root))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("inspector.showAllAttributes", d.Inspector.ShowAllAttributes)
	v.SetDefault("inspector.preserveScopeSelection", d.Inspector.PreserveScopeSelection)
	v.SetDefault("watch.debounceMs", d.Watch.DebounceMs)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("output.format", d.Output.Format)
}

// Save writes the configuration to <root>/.nodelens/config.json
func (c *Config) Save(root string) error {
	configPath := paths.ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, append(data, '\n'), 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Watch.DebounceMs < 0 {
		return &ConfigError{Field: "watch.debounceMs", Message: "must not be negative"}
	}
	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}
	if !oneOf(c.Logging.Format, "human", "json") {
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	if !oneOf(strings.ToLower(c.Logging.Level), "", "debug", "info", "warn", "warning", "error") {
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn or error"}
	}
	if !oneOf(c.Output.Format, "human", "json", "yaml") {
		return &ConfigError{Field: "output.format", Message: "must be human, json or yaml"}
	}
	return nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
