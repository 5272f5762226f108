package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Orientation != "left-right" || cfg.Render.Width != 800 {
		t.Errorf("missing file should yield defaults, got %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
orientation = "top-bottom"
width = 1200.0

[cache]
redis_addr = "localhost:6379"

[server]
addr = ":9999"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Render.Orientation != "top-bottom" {
		t.Errorf("Orientation = %q, want top-bottom", cfg.Render.Orientation)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("Width = %v, want 1200", cfg.Render.Width)
	}
	// Untouched fields keep their defaults.
	if cfg.Render.Transform != "identity" {
		t.Errorf("Transform = %q, want identity default", cfg.Render.Transform)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}
