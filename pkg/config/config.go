// Package config loads engine configuration from a TOML file.
//
// Every numeric knob that used to be scattered through the layout code is
// named here so tolerances and penalties can be tuned without touching
// algorithm code. All values have working defaults; a missing config file
// is not an error.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root engine configuration.
type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Tolerance Tolerance `toml:"tolerance"`
	Router    Router    `toml:"router"`
	Cache     Cache     `toml:"cache"`
	Store     Store     `toml:"store"`
	Rules     Rules     `toml:"rules"`
}

// Canvas describes the slide geometry, in inches.
type Canvas struct {
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	MarginX        float64 `toml:"margin_x"`
	MarginY        float64 `toml:"margin_y"`
	TitleHeight    float64 `toml:"title_height"`
	SubtitleHeight float64 `toml:"subtitle_height"`
}

// Tolerance holds the numeric tolerances used by validation and snapping.
type Tolerance struct {
	// AlignLoose is how close to canvas center a shape must be before the
	// alignment check cares about it at all.
	AlignLoose float64 `toml:"align_loose"`
	// AlignTight is the drift from exact center that the alignment check
	// still accepts.
	AlignTight float64 `toml:"align_tight"`
	// SpacingDeviation is the allowed relative deviation of each gap from
	// the mean gap (0.2 = 20%).
	SpacingDeviation float64 `toml:"spacing_deviation"`
	// SnapThreshold is the default snapping distance.
	SnapThreshold float64 `toml:"snap_threshold"`
	// FixGap is the separation inserted between shapes when the auto-fix
	// pass pushes an overlapping shape downward.
	FixGap float64 `toml:"fix_gap"`
}

// Router tunes the orthogonal connector router.
type Router struct {
	CellSize      float64 `toml:"cell_size"`
	Clearance     float64 `toml:"clearance"`
	TurnPenalty   float64 `toml:"turn_penalty"`
	MaxExpansions int     `toml:"max_expansions"`
}

// Cache configures the layout cache backend.
type Cache struct {
	// Backend is "file", "redis", or "none".
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	Addr     string `toml:"addr"`     // redis address
	Password string `toml:"password"` // redis password
	DB       int    `toml:"db"`       // redis database index
}

// Store configures the optional layout archive.
type Store struct {
	// URI is the MongoDB connection string. Empty disables the archive.
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Rules configures on-disk archetype rule directories.
type Rules struct {
	// Dir is the root rules directory; predefined rules live directly in
	// it and learned rules under Dir/learned.
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:          13.333,
			Height:         7.5,
			MarginX:        0.5,
			MarginY:        0.4,
			TitleHeight:    0.9,
			SubtitleHeight: 0.5,
		},
		Tolerance: Tolerance{
			AlignLoose:       1.0,
			AlignTight:       0.05,
			SpacingDeviation: 0.2,
			SnapThreshold:    0.1,
			FixGap:           0.15,
		},
		Router: Router{
			CellSize:      0.1,
			Clearance:     0.15,
			TurnPenalty:   2,
			MaxExpansions: 20000,
		},
		Cache: Cache{Backend: "file"},
		Store: Store{Database: "diagramkit", Collection: "layouts"},
	}
}

// Load reads the TOML config at path, layering it over the defaults.
// A missing file returns the defaults without error; a malformed file
// returns an error so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
