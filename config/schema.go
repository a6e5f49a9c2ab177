package config

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/printworks/cardpress/diag"
	"github.com/printworks/cardpress/geom"
)

// fieldSpec is one entry of the configuration schema: the file key, how a
// raw decoded value lands on Config, and the rule the stored value must
// satisfy. check returns "" when the value is valid.
type fieldSpec struct {
	key   string
	set   func(c *Config, raw any) error
	check func(c *Config) string
}

// schema returns the full configuration schema in file order.
func schema() []fieldSpec {
	return []fieldSpec{
		{
			key: "card_width_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.CardWidth, raw) },
			check: func(c *Config) string {
				if c.CardWidth <= 0 {
					return "must be greater than zero"
				}
				return ""
			},
		},
		{
			key: "card_height_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.CardHeight, raw) },
			check: func(c *Config) string {
				if c.CardHeight <= 0 {
					return "must be greater than zero"
				}
				return ""
			},
		},
		{
			key: "card_border_thickness_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.BorderThickness, raw) },
			check: func(c *Config) string {
				if c.BorderThickness < 0 {
					return "must not be negative"
				}
				return ""
			},
		},
		{
			key: "font_path",
			set: func(c *Config, raw any) error { return setString(&c.FontPath, raw) },
		},
		{
			key: "font_size_pt",
			set: func(c *Config, raw any) error { return setPoints(&c.FontSize, raw) },
			check: func(c *Config) string {
				if c.FontSize <= 0 {
					return "must be greater than zero"
				}
				return ""
			},
		},
		{
			// Unknown values are not an error: validation warns and the
			// renderer falls back to horizontal.
			key: "text_orientation",
			set: func(c *Config, raw any) error {
				s, ok := raw.(string)
				if !ok {
					return fmt.Errorf("expected a string, got %T", raw)
				}
				c.TextOrient = Orientation(s)
				return nil
			},
		},
		{
			key: "text_top_offset_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.TextTopOffset, raw) },
			check: func(c *Config) string {
				if c.TextTopOffset < 0 {
					return "must not be negative"
				}
				return ""
			},
		},
		{
			key: "barcode_width_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.BarcodeWidth, raw) },
			check: func(c *Config) string {
				if c.BarcodeWidth <= 0 {
					return "must be greater than zero"
				}
				return ""
			},
		},
		{
			key: "barcode_height_scale_percent",
			set: func(c *Config, raw any) error { return setFloat(&c.BarcodeHeightScale, raw) },
			check: func(c *Config) string {
				if c.BarcodeHeightScale <= 0 {
					return "must be greater than zero"
				}
				return ""
			},
		},
		{
			key: "barcode_top_offset_percent",
			set: func(c *Config, raw any) error {
				if raw == nil {
					c.BarcodeTopOffset = nil
					return nil
				}
				f, ok := toFloat(raw)
				if !ok {
					return fmt.Errorf("expected a number, got %T", raw)
				}
				c.BarcodeTopOffset = &f
				return nil
			},
			check: func(c *Config) string {
				if c.BarcodeTopOffset != nil && (*c.BarcodeTopOffset <= 0 || *c.BarcodeTopOffset > 100) {
					return "must be between 0 and 100"
				}
				return ""
			},
		},
		{
			key: "barcode_right_offset_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.BarcodeRightOffset, raw) },
			check: func(c *Config) string {
				if c.BarcodeRightOffset < 0 {
					return "must not be negative"
				}
				return ""
			},
		},
		{
			key: "cards_per_row",
			set: func(c *Config, raw any) error { return setInt(&c.CardsPerRow, raw) },
			check: func(c *Config) string {
				if c.CardsPerRow < 1 {
					return "must be at least 1"
				}
				return ""
			},
		},
		{
			key: "gap_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.Gap, raw) },
			check: func(c *Config) string {
				if c.Gap < 0 {
					return "must not be negative"
				}
				return ""
			},
		},
		{
			key: "top_margin_mm",
			set: func(c *Config, raw any) error { return setMillimeters(&c.TopMargin, raw) },
			check: func(c *Config) string {
				if c.TopMargin < 0 {
					return "must not be negative"
				}
				return ""
			},
		},
		{
			key: "export_individual_cards",
			set: func(c *Config, raw any) error { return setBool(&c.ExportCards, raw) },
		},
	}
}

// Parse applies raw key/value pairs on top of the defaults. Values with
// the wrong kind are collected into a *ConfigError rather than stopping
// at the first; unknown keys are ignored with a warning.
func Parse(raw map[string]any) (Config, []diag.Warning, error) {
	cfg := Default()

	var invalid []FieldError
	specs := schema()
	seen := make(map[string]bool, len(specs))
	for i := range specs {
		spec := &specs[i]
		seen[spec.key] = true
		val, ok := raw[spec.key]
		if !ok {
			continue
		}
		if err := spec.set(&cfg, val); err != nil {
			invalid = append(invalid, FieldError{Key: spec.key, Message: err.Error()})
		}
	}

	var unknown []string
	for key := range raw {
		if !seen[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	var warnings []diag.Warning
	for _, key := range unknown {
		warnings = append(warnings, diag.Warningf(diag.CodeConfig, "unknown configuration key %q ignored", key))
	}

	if len(invalid) > 0 {
		return cfg, warnings, &ConfigError{Fields: invalid}
	}
	return cfg, warnings, nil
}

// ============================================================================
// Value coercion
// ============================================================================

// toFloat accepts the numeric types JSON and YAML decoders produce.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func setFloat(dst *float64, raw any) error {
	f, ok := toFloat(raw)
	if !ok {
		return fmt.Errorf("expected a number, got %T", raw)
	}
	*dst = f
	return nil
}

func setMillimeters(dst *geom.Millimeters, raw any) error {
	f, ok := toFloat(raw)
	if !ok {
		return fmt.Errorf("expected a number, got %T", raw)
	}
	*dst = geom.Millimeters(f)
	return nil
}

func setPoints(dst *geom.Points, raw any) error {
	f, ok := toFloat(raw)
	if !ok {
		return fmt.Errorf("expected a number, got %T", raw)
	}
	*dst = geom.Points(f)
	return nil
}

func setInt(dst *int, raw any) error {
	f, ok := toFloat(raw)
	if !ok || f != math.Trunc(f) {
		return fmt.Errorf("expected a whole number, got %v", raw)
	}
	*dst = int(f)
	return nil
}

func setString(dst *string, raw any) error {
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", raw)
	}
	*dst = s
	return nil
}

func setBool(dst *bool, raw any) error {
	b, ok := raw.(bool)
	if !ok {
		return fmt.Errorf("expected true or false, got %T", raw)
	}
	*dst = b
	return nil
}
