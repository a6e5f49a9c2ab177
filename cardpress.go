// Package cardpress composes printable identification cards: it
// normalizes holder names and EAN-13 identifiers, renders each card as
// a raster with a scannable barcode, and packs the cards onto A4 sheets
// ready for a document sink.
//
// Basic usage:
//
//	gen := cardpress.NewGenerator(config.Default())
//	doc, warnings, err := gen.Generate(records)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cardpress.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := cardpress.NewGenerator(cfg).
//	    WithFontDir(filepath.Dir(rosterPath)).
//	    WithExporter(export.DirExporter{Dir: "cards"}).
//	    Generate(records)
//
// For advanced use cases, the lower-level normalize, card, and sheet
// packages are also available.
package cardpress

import (
	"github.com/printworks/cardpress/diag"
)

// Warning is a non-fatal diagnostic collected while generating cards.
type Warning = diag.Warning

// FormatWarnings renders warnings as a single human-readable string.
//
// Example:
//
//	log.Println("Warnings:", cardpress.FormatWarnings(warnings))
func FormatWarnings(warnings []Warning) string {
	return diag.FormatWarnings(warnings)
}

// RawRecord is one roster row as read from a record source, before any
// normalization. Identifier keeps the source's cell type: text cells
// arrive as string, number cells as float64.
type RawRecord struct {
	Row        int
	Name       string
	Identifier any
}

// Record is a normalized roster row: the name in canonical
// "SURNAME F.P." form and the identifier as 13 EAN-13 digits.
type Record struct {
	Row        int
	Name       string
	Identifier string
}

// Must unwraps a (value, error) return and panics on a non-nil error.
// Meant for examples and short scripts where the error path is noise.
//
// Example:
//
//	doc := cardpress.Must(sheet.Pack(cards, cfg))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustGenerate is a helper that wraps a call returning (T, []Warning,
// error) and panics if the error is non-nil. It discards warnings and
// returns just the value.
//
// Example:
//
//	doc := cardpress.MustGenerate(gen.Generate(records))
func MustGenerate[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
