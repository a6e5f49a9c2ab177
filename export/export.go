// Package export writes individual card rasters to disk as PNG files,
// one per card, named after the card holder.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/printworks/cardpress/card"
)

// Runs of characters that are unsafe in a file name across platforms.
var unsafeRuns = regexp.MustCompile(`[^\p{L}\p{N}_.\-]+`)

// File names longer than this are cut; identifiers stay unique upstream
// so truncation only trims display names.
const maxNameRunes = 100

// SafeName derives a file name (without extension) for a card. Unsafe
// runs collapse to a single underscore, the result is capped at 100
// runes, and an empty name falls back to the identifier.
//
// Example:
//
//	SafeName("ИВАНОВ И.И.", "4006381333931") // "ИВАНОВ_И.И."
//	SafeName("", "4006381333931")            // "4006381333931"
func SafeName(name, identifier string) string {
	safe := unsafeRuns.ReplaceAllString(name, "_")
	if r := []rune(safe); len(r) > maxNameRunes {
		safe = string(r[:maxNameRunes])
	}
	if safe == "" {
		return identifier
	}
	return safe
}

// Exporter persists a rendered card somewhere. The generator calls it
// once per card, in input order.
type Exporter interface {
	Export(c *card.Card) error
}

// DirExporter writes each card as <SafeName>.png under Dir, creating
// the directory as needed. Cards whose names collide after sanitizing
// overwrite each other.
type DirExporter struct {
	Dir string
}

// Export writes one card image.
func (e DirExporter) Export(c *card.Card) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("creating card directory: %w", err)
	}
	data, err := c.ToPNG()
	if err != nil {
		return err
	}
	path := filepath.Join(e.Dir, SafeName(c.Name, c.Identifier)+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing card %s: %w", c.Identifier, err)
	}
	return nil
}
