package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/noise"
)

// ErrInvalidConfig is returned by Validate for settings New would not reach.
var ErrInvalidConfig = errors.New("invalid config")

// Boundary policies for stepping past the first or last slice.
const (
	BoundaryClamp = "clamp"
	BoundaryWrap  = "wrap"
)

// Config holds the explorer configuration.
type Config struct {
	SizeX     int     `json:"size_x"`
	SizeY     int     `json:"size_y"`
	SizeZ     int     `json:"size_z"`
	Points    int     `json:"points"`
	Threshold float64 `json:"threshold"`
	Seed      int64   `json:"seed"` // 0 = random at start-up

	Boundary string `json:"boundary"` // "clamp" or "wrap"
	Index    string `json:"index"`    // "brute" or "kdtree"
	Workers  int    `json:"workers"`  // 0 = GOMAXPROCS

	FillGlyph  string `json:"fill_glyph"`
	EmptyGlyph string `json:"empty_glyph"`
	ExportDir  string `json:"export_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SizeX:      27,
		SizeY:      125,
		SizeZ:      54,
		Points:     750,
		Threshold:  3.5,
		Boundary:   BoundaryClamp,
		Index:      "brute",
		FillGlyph:  "#",
		EmptyGlyph: " ",
		ExportDir:  ".",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["x"] {
		cfg.SizeX = fromFile.SizeX
	}
	if !explicitFlags["y"] {
		cfg.SizeY = fromFile.SizeY
	}
	if !explicitFlags["z"] {
		cfg.SizeZ = fromFile.SizeZ
	}
	if !explicitFlags["points"] {
		cfg.Points = fromFile.Points
	}
	if !explicitFlags["threshold"] {
		cfg.Threshold = fromFile.Threshold
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["boundary"] {
		cfg.Boundary = fromFile.Boundary
	}
	if !explicitFlags["index"] {
		cfg.Index = fromFile.Index
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["fill"] {
		cfg.FillGlyph = fromFile.FillGlyph
	}
	if !explicitFlags["empty"] {
		cfg.EmptyGlyph = fromFile.EmptyGlyph
	}
	if !explicitFlags["export-dir"] {
		cfg.ExportDir = fromFile.ExportDir
	}
}

// Validate checks the settings that belong to the shell rather than the field.
// Field parameters are checked by noise.New.
func (c *Config) Validate() error {
	if c.Boundary != BoundaryClamp && c.Boundary != BoundaryWrap {
		return fmt.Errorf("%w: boundary %q, want %q or %q", ErrInvalidConfig, c.Boundary, BoundaryClamp, BoundaryWrap)
	}
	if _, err := noise.ParseIndex(c.Index); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if utf8.RuneCountInString(c.FillGlyph) != 1 {
		return fmt.Errorf("%w: fill glyph %q must be a single character", ErrInvalidConfig, c.FillGlyph)
	}
	if utf8.RuneCountInString(c.EmptyGlyph) != 1 {
		return fmt.Errorf("%w: empty glyph %q must be a single character", ErrInvalidConfig, c.EmptyGlyph)
	}
	return nil
}

// Params converts the field settings into noise parameters for the given seed.
// Call Validate first; an unknown index name falls back to brute force.
func (c *Config) Params(seed int64) noise.Params {
	idx, _ := noise.ParseIndex(c.Index)
	return noise.Params{
		SizeX:     c.SizeX,
		SizeY:     c.SizeY,
		SizeZ:     c.SizeZ,
		Points:    c.Points,
		Threshold: c.Threshold,
		Seed:      seed,
		Index:     idx,
		Workers:   c.Workers,
	}
}

// Glyphs returns the fill and empty characters.
func (c *Config) Glyphs() (fill, empty rune) {
	fill, _ = utf8.DecodeRuneInString(c.FillGlyph)
	empty, _ = utf8.DecodeRuneInString(c.EmptyGlyph)
	return fill, empty
}
