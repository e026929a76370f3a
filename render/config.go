package render

import (
	"fmt"
	"strings"
)

// Supported raster formats
var supportedFormats = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tif":  true,
	"tiff": true,
}

// IsSupportedFormat reports whether ext (with or without a leading dot)
// names a raster format the renderer can write
func IsSupportedFormat(ext string) bool {
	return supportedFormats[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// Config holds the configuration for the renderer
type Config struct {
	// Format is the image format and file extension (default: png)
	Format string `yaml:"format"`

	// PanelWidthInches is the width of each panel; a chart is as wide as
	// its panel count times this (default: 7)
	PanelWidthInches float64 `yaml:"panel_width_inches"`

	// HeightInches is the image height (default: 5.5)
	HeightInches float64 `yaml:"height_inches"`

	// DPI is the raster resolution (default: 300)
	DPI int `yaml:"dpi"`
}

// DefaultConfig returns a configuration with publication-quality defaults
func DefaultConfig() Config {
	return Config{
		Format:           "png",
		PanelWidthInches: 7,
		HeightInches:     5.5,
		DPI:              300,
	}
}

// Validate checks if the configuration is valid and applies defaults where needed
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Format == "" {
		c.Format = "png"
	}
	if !supportedFormats[c.Format] {
		return fmt.Errorf("unsupported image format %q (want png, jpg or tiff)", c.Format)
	}

	if c.PanelWidthInches <= 0 {
		c.PanelWidthInches = 7
	}
	if c.HeightInches <= 0 {
		c.HeightInches = 5.5
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}

	// Keep each panel under 50 megapixels
	if c.PanelWidthInches*c.HeightInches*float64(c.DPI*c.DPI) > 50e6 {
		return fmt.Errorf("panel size %.1fx%.1f in at %d dpi is too large", c.PanelWidthInches, c.HeightInches, c.DPI)
	}

	return nil
}
