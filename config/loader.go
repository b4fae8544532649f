package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default configuration file location,
// ~/.config/tuneshelf/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &ConfigError{Message: fmt.Sprintf("cannot determine home directory: %v", err)}
	}
	return filepath.Join(home, ".config", "tuneshelf", "config.yaml"), nil
}

// Load reads and validates the configuration at path. A missing file is
// created fresh with full defaults and those defaults are returned;
// an existing file has any missing keys backfilled from defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("error reading configuration file %s: %v", path, err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("error parsing configuration file %s: %v", path, err)}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration document to path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &ConfigError{Message: fmt.Sprintf("error creating configuration directory: %v", err)}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return &ConfigError{Message: fmt.Sprintf("error encoding configuration: %v", err)}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ConfigError{Message: fmt.Sprintf("error writing configuration file %s: %v", path, err)}
	}
	return nil
}
