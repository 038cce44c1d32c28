// Package config holds the CLI configuration: grid density, chart
// presentation settings and retrieval options.
package config

import (
	"fmt"

	"github.com/pable/go-shotcharts/internal/grid"
)

// Config is the process configuration.
type Config struct {
	// Density selects the grid resolution: small, medium or large.
	Density string `koanf:"density"`

	// Theme is the court color scheme: dark or light.
	Theme string `koanf:"theme"`

	// Marker is the marker shape: hexagon or circle.
	Marker string `koanf:"marker"`

	// ImageSize scales the rendered chart: small, medium or large.
	ImageSize string `koanf:"image_size"`

	// OutDir is where rendered charts are written when no explicit path is given.
	OutDir string `koanf:"out_dir"`

	// MirrorX negates LOC_X on import.
	MirrorX bool `koanf:"mirror_x"`

	// BaseURL overrides the stats API root used by fetch.
	BaseURL string `koanf:"base_url"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Density:   string(grid.DensityMedium),
		Theme:     "dark",
		Marker:    "hexagon",
		ImageSize: "large",
		OutDir:    ".",
	}
}

// Validate checks the enumerated options.
func (c *Config) Validate() error {
	if _, err := grid.Density(c.Density).Bins(); err != nil {
		return err
	}
	if !oneOf(c.Theme, "dark", "light") {
		return fmt.Errorf("unknown theme %q (want dark or light)", c.Theme)
	}
	if !oneOf(c.Marker, "hexagon", "circle") {
		return fmt.Errorf("unknown marker %q (want hexagon or circle)", c.Marker)
	}
	if !oneOf(c.ImageSize, "small", "medium", "large") {
		return fmt.Errorf("unknown image size %q (want small, medium or large)", c.ImageSize)
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	return nil
}

// Grid returns the binning configuration for the configured density.
func (c *Config) Grid() (grid.Config, error) {
	return grid.New(grid.Density(c.Density))
}

func oneOf(v string, opts ...string) bool {
	for _, o := range opts {
		if v == o {
			return true
		}
	}
	return false
}
