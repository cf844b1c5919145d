package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nodelens/internal/paths"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Inspector.ShowAllAttributes {
		t.Error("ShowAllAttributes should be off by default")
	}
	if !cfg.Inspector.PreserveScopeSelection {
		t.Error("PreserveScopeSelection should be on by default")
	}
	if cfg.Watch.DebounceMs != 200 {
		t.Errorf("DebounceMs = %d, want 200", cfg.Watch.DebounceMs)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %q, want human", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"version 0", func(c *Config) { c.Version = 0 }, "version"},
		{"version 2", func(c *Config) { c.Version = 2 }, "version"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }, "watch.debounceMs"},
		{"zero debounce", func(c *Config) { c.Watch.DebounceMs = 0 }, ""},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -2 }, "logging.maxBackups"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log level upper", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
		{"output yaml", func(c *Config) { c.Output.Format = "yaml" }, ""},
		{"output format", func(c *Config) { c.Output.Format = "csv" }, "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() returned unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "version", Message: "unsupported config version 99"}
	want := "config error in field 'version': unsupported config version 99"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	root := t.TempDir()
	if _, err := paths.EnsureDir(root); err != nil {
		t.Fatal(err)
	}
	content := `{
  "version": 1,
  "inspector": {"showAllAttributes": true},
  "output": {"format": "yaml"}
}`
	if err := os.WriteFile(paths.ConfigPath(root), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Inspector.ShowAllAttributes {
		t.Error("ShowAllAttributes should come from the file")
	}
	if !cfg.Inspector.PreserveScopeSelection {
		t.Error("PreserveScopeSelection should keep its default")
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Watch.DebounceMs != 200 {
		t.Errorf("DebounceMs = %d, want default 200", cfg.Watch.DebounceMs)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	root := t.TempDir()
	if _, err := paths.EnsureDir(root); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigPath(root), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(root); err == nil {
		t.Error("LoadConfig() should fail on invalid JSON")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("NODELENS_WATCH_DEBOUNCEMS", "750")
	t.Setenv("NODELENS_OUTPUT_FORMAT", "json")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Watch.DebounceMs != 750 {
		t.Errorf("DebounceMs = %d, want 750", cfg.Watch.DebounceMs)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")

	cfg := DefaultConfig()
	cfg.Inspector.ShowAllAttributes = true
	cfg.Watch.DebounceMs = 50
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}
