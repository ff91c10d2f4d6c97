// Package config handles configuration loading for element-digitizer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

// Config holds the tool's settings. Flags override config values, which
// override environment values, which override defaults.
type Config struct {
	// DatabaseRoot is the repository root directory.
	DatabaseRoot string `toml:"database_root"`
	// DefaultModule partitions records when no module is given.
	DefaultModule string `toml:"default_module"`
	// Author pre-fills metadata.author.
	Author string `toml:"author"`
	// SoftwareVersion pre-fills metadata.software_version.
	SoftwareVersion string `toml:"software_version"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatabaseRoot:  "database",
		DefaultModule: model.DefaultModule,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "element-digitizer", "config.toml")
}

// Load reads the TOML file at path, applies environment overrides, and
// validates. A missing file yields the defaults (still env-overridable).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ELEMENT_DIGITIZER_DB"); v != "" {
		c.DatabaseRoot = v
	}
	if v := os.Getenv("ELEMENT_DIGITIZER_MODULE"); v != "" {
		c.DefaultModule = v
	}
	if v := os.Getenv("ELEMENT_DIGITIZER_AUTHOR"); v != "" {
		c.Author = v
	}
	if v := os.Getenv("ELEMENT_DIGITIZER_SOFTWARE_VERSION"); v != "" {
		c.SoftwareVersion = v
	}
}

// Validate checks settings that would otherwise fail deep inside a save.
func (c *Config) Validate() error {
	if c.DatabaseRoot == "" {
		return fmt.Errorf("database_root must not be empty")
	}
	if !model.ValidModuleName(c.DefaultModule) {
		return fmt.Errorf("default_module %q: must contain only lowercase letters, digits, and underscores", c.DefaultModule)
	}
	return nil
}
