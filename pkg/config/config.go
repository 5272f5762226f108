// Package config loads seqviz defaults from a TOML file. Command-line
// flags override file values; the file overrides built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all configurable defaults.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Orientation string  `toml:"orientation"`
	Transform   string  `toml:"transform"`
	Bracket     string  `toml:"bracket"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
}

// CacheConfig holds artifact-cache settings.
type CacheConfig struct {
	Disabled  bool   `toml:"disabled"`
	Dir       string `toml:"dir"`        // file backend; empty means the default path
	RedisAddr string `toml:"redis_addr"` // non-empty selects the redis backend
}

// ServerConfig holds serve-mode settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MongoURI string `toml:"mongo_uri"` // non-empty selects the mongo archive store
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Orientation: "left-right",
			Transform:   "identity",
			Bracket:     "rectangular",
			Width:       800,
			Height:      600,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the conventional config file location,
// e.g. ~/.config/seqviz/config.toml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "seqviz", "config.toml"), nil
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
