// Package config holds the card generation settings and their
// schema-driven loading and validation.
//
// Every setting has an entry in an explicit schema: its file key, how a
// raw decoded value is coerced onto the [Config] struct, and the rule it
// must satisfy. Parsing aggregates every bad value instead of stopping at
// the first, and validation does the same, so one round trip surfaces
// everything that needs fixing.
package config

import "github.com/printworks/cardpress/geom"

// Orientation selects how the card holder's name is drawn.
type Orientation string

// Canonical orientations. Any other value is reported as a warning
// during validation and rendered as [Horizontal].
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// known reports whether the orientation is one of the canonical values.
func (o Orientation) known() bool {
	return o == Horizontal || o == Vertical
}

// Config holds every knob of card generation. Zero value is not useful;
// start from [Default] or [Load].
type Config struct {
	// Card dimensions.
	CardWidth       geom.Millimeters
	CardHeight      geom.Millimeters
	BorderThickness geom.Millimeters // rendered at least one pixel wide

	// Name text.
	FontPath      string
	FontSize      geom.Points
	TextOrient    Orientation
	TextTopOffset geom.Millimeters

	// Barcode placement.
	BarcodeWidth       geom.Millimeters
	BarcodeHeightScale float64  // percent of the natural barcode height
	BarcodeTopOffset   *float64 // percent of card height; nil centers vertically
	BarcodeRightOffset geom.Millimeters

	// Sheet layout.
	CardsPerRow int
	Gap         geom.Millimeters
	TopMargin   geom.Millimeters

	// Per-card PNG export.
	ExportCards bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CardWidth:          35,
		CardHeight:         15,
		BorderThickness:    0.2,
		FontPath:           "ArialNarrow.ttf",
		FontSize:           7,
		TextOrient:         Horizontal,
		TextTopOffset:      2,
		BarcodeWidth:       26,
		BarcodeHeightScale: 100,
		BarcodeTopOffset:   nil,
		BarcodeRightOffset: 6,
		CardsPerRow:        5,
		Gap:                1,
		TopMargin:          12,
		ExportCards:        true,
	}
}
