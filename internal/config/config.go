// Package config loads the application configuration from an optional YAML
// file, falling back to built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings. An empty DBPath selects the in-memory
// store; Seed controls whether that store starts with the demo data set.
type Config struct {
	Addr      string `yaml:"addr"`
	DBPath    string `yaml:"db_path"`
	StaticDir string `yaml:"static_dir"`
	Seed      bool   `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:      ":8080",
		StaticDir: "web/dist",
		Seed:      true,
	}
}

// Load reads the config file at path and merges it over the defaults. An
// empty path or a missing file yields the defaults; only unreadable or
// malformed files are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = Default().Addr
	}
	return cfg, nil
}
