package config

import (
	"github.com/printworks/cardpress/diag"
	"github.com/printworks/cardpress/geom"
)

// Validate checks every hard rule in the schema and aggregates all
// violations into a *ConfigError. It does not mutate the configuration.
//
// The returned warnings flag layouts that will generate but look wrong:
// a barcode pushed past the left card edge, a row wider than the page,
// or an orientation value that will fall back to horizontal.
func (c Config) Validate() ([]diag.Warning, error) {
	var invalid []FieldError
	for _, spec := range schema() {
		if spec.check == nil {
			continue
		}
		if msg := spec.check(&c); msg != "" {
			invalid = append(invalid, FieldError{Key: spec.key, Message: msg})
		}
	}

	warnings := c.layoutWarnings()
	if len(invalid) > 0 {
		return warnings, &ConfigError{Fields: invalid}
	}
	return warnings, nil
}

// layoutWarnings reports geometry that fits no better than badly.
func (c Config) layoutWarnings() []diag.Warning {
	var warnings []diag.Warning

	if !c.TextOrient.known() {
		warnings = append(warnings, diag.Warningf(diag.CodeConfig,
			"unknown text_orientation %q, rendering as %q", string(c.TextOrient), string(Horizontal)))
	}

	if c.BarcodeWidth > 0 && c.BarcodeWidth+c.BarcodeRightOffset > c.CardWidth {
		warnings = append(warnings, diag.Warningf(diag.CodeConfig,
			"barcode width plus right offset (%.1f mm) exceeds the card width (%.1f mm)",
			float64(c.BarcodeWidth+c.BarcodeRightOffset), float64(c.CardWidth)))
	}

	if c.CardsPerRow >= 1 {
		row := float64(c.CardWidth)*float64(c.CardsPerRow) + float64(c.Gap)*float64(c.CardsPerRow-1)
		if geom.Millimeters(row) > geom.A4Width {
			warnings = append(warnings, diag.Warningf(diag.CodeConfig,
				"a row of %d cards spans %.1f mm, wider than an A4 page (%.0f mm)",
				c.CardsPerRow, row, float64(geom.A4Width)))
		}
	}

	return warnings
}
