package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return p
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.json", `{
		"card_width_mm": 40,
		"text_orientation": "vertical",
		"barcode_top_offset_percent": 30
	}`)

	cfg, warnings, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Load() warnings = %v, want none", warnings)
	}
	if cfg.CardWidth != 40 {
		t.Errorf("CardWidth = %v, want 40", cfg.CardWidth)
	}
	if cfg.TextOrient != Vertical {
		t.Errorf("TextOrient = %q, want vertical", cfg.TextOrient)
	}
	if cfg.BarcodeTopOffset == nil || *cfg.BarcodeTopOffset != 30 {
		t.Errorf("BarcodeTopOffset = %v, want 30", cfg.BarcodeTopOffset)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
card_width_mm: 42.5
cards_per_row: 4
export_individual_cards: false
`)

	cfg, _, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CardWidth != 42.5 {
		t.Errorf("CardWidth = %v, want 42.5", cfg.CardWidth)
	}
	if cfg.CardsPerRow != 4 {
		t.Errorf("CardsPerRow = %v, want 4", cfg.CardsPerRow)
	}
	if cfg.ExportCards {
		t.Error("ExportCards should be false")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := Load(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Load() should fail for a missing file")
		}
	})

	t.Run("bad json", func(t *testing.T) {
		p := writeFile(t, dir, "broken.json", `{"card_width_mm": `)
		if _, _, err := Load(p); err == nil {
			t.Error("Load() should fail for malformed JSON")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		p := writeFile(t, dir, "config.toml", `card_width_mm = 40`)
		if _, _, err := Load(p); err == nil {
			t.Error("Load() should reject unknown formats")
		}
	})
}

func TestDiscover(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		if p, ok := Discover(t.TempDir()); ok {
			t.Errorf("Discover() = %q, want no match", p)
		}
	})

	t.Run("yaml only", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFile(t, dir, "config.yaml", "cards_per_row: 3\n")
		p, ok := Discover(dir)
		if !ok || p != want {
			t.Errorf("Discover() = %q, %v, want %q", p, ok, want)
		}
	})

	t.Run("json wins over yaml", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFile(t, dir, "config.json", "{}")
		writeFile(t, dir, "config.yaml", "cards_per_row: 3\n")
		p, ok := Discover(dir)
		if !ok || p != want {
			t.Errorf("Discover() = %q, %v, want %q", p, ok, want)
		}
	})
}
