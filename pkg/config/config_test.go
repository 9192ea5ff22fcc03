package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Canvas.Width != Default().Canvas.Width {
		t.Errorf("Canvas.Width = %v, want default", cfg.Canvas.Width)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	body := `
[canvas]
width = 10.0

[router]
max_expansions = 500
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Canvas.Width != 10.0 {
		t.Errorf("Canvas.Width = %v, want 10.0", cfg.Canvas.Width)
	}
	if cfg.Router.MaxExpansions != 500 {
		t.Errorf("Router.MaxExpansions = %v, want 500", cfg.Router.MaxExpansions)
	}
	// untouched sections keep defaults
	if cfg.Tolerance.SpacingDeviation != 0.2 {
		t.Errorf("Tolerance.SpacingDeviation = %v, want 0.2", cfg.Tolerance.SpacingDeviation)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("canvas = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted malformed TOML")
	}
}
