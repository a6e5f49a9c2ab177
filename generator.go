package cardpress

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/printworks/cardpress/card"
	"github.com/printworks/cardpress/config"
	"github.com/printworks/cardpress/diag"
	"github.com/printworks/cardpress/export"
	"github.com/printworks/cardpress/normalize"
	"github.com/printworks/cardpress/sheet"
)

// Generator runs the card pipeline for one configuration. The With*
// methods return modified copies and never touch their receiver, so a
// shared base Generator can be specialized from several goroutines.
type Generator struct {
	cfg      config.Config
	fontDir  string
	exporter export.Exporter
}

// NewGenerator creates a Generator for the given configuration. The
// configuration is validated once, when Generate runs.
func NewGenerator(cfg config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// clone backs the With* methods; the receiver is left untouched.
func (g *Generator) clone() *Generator {
	return &Generator{
		cfg:      g.cfg,
		fontDir:  g.fontDir,
		exporter: g.exporter,
	}
}

// WithFontDir sets the directory relative font paths resolve against,
// typically the roster file's directory.
//
// Example:
//
//	gen := cardpress.NewGenerator(cfg).WithFontDir(filepath.Dir(rosterPath))
func (g *Generator) WithFontDir(dir string) *Generator {
	ng := g.clone()
	ng.fontDir = dir
	return ng
}

// WithExporter attaches an exporter that receives every rendered card.
// It only runs when the configuration enables individual card export.
func (g *Generator) WithExporter(e export.Exporter) *Generator {
	ng := g.clone()
	ng.exporter = e
	return ng
}

// Normalize canonicalizes raw roster rows: names to "SURNAME F.P."
// form, identifiers to 13 verified EAN-13 digits. The first invalid row
// fails the whole batch with a ValidationError naming the row and
// field. Duplicate identifiers are not an error; each duplicated value
// adds one warning listing the rows it appears in.
func (g *Generator) Normalize(raw []RawRecord) ([]Record, []Warning, error) {
	records := make([]Record, 0, len(raw))
	entries := make([]normalize.Entry, 0, len(raw))

	for _, rec := range raw {
		name, err := normalize.Name(rec.Name)
		if err != nil {
			return nil, nil, &normalize.ValidationError{Row: rec.Row, Field: "name", Err: err}
		}
		identifier, err := normalize.Identifier(rec.Identifier)
		if err != nil {
			return nil, nil, &normalize.ValidationError{Row: rec.Row, Field: "identifier", Err: err}
		}
		records = append(records, Record{Row: rec.Row, Name: name, Identifier: identifier})
		entries = append(entries, normalize.Entry{Row: rec.Row, Identifier: identifier})
	}

	var warnings []Warning
	for _, d := range normalize.Duplicates(entries) {
		warnings = append(warnings, diag.Warningf(diag.CodeDuplicate,
			"identifier %s appears in rows %s", d.Identifier, joinRows(d.Rows)))
	}

	return records, warnings, nil
}

// RenderCards draws one card per record, in order. Font substitutions
// surface as warnings; a record that cannot be drawn fails the batch.
func (g *Generator) RenderCards(records []Record) ([]*card.Card, []Warning, error) {
	renderer, warnings := card.NewRenderer(g.cfg, card.NewResolver(g.cfg, g.fontDir))

	cards := make([]*card.Card, 0, len(records))
	for _, rec := range records {
		c, err := renderer.Render(rec.Name, rec.Identifier)
		if err != nil {
			return nil, warnings, err
		}
		cards = append(cards, c)
	}

	return cards, warnings, nil
}

// Generate runs the full pipeline: validate the configuration,
// normalize the records, render the cards, export them if configured,
// and pack everything into a paginated document. Warnings from every
// stage accumulate in order; the first error stops the run.
func (g *Generator) Generate(raw []RawRecord) (*sheet.Document, []Warning, error) {
	warnings, err := g.cfg.Validate()
	if err != nil {
		return nil, warnings, err
	}

	records, nw, err := g.Normalize(raw)
	warnings = append(warnings, nw...)
	if err != nil {
		return nil, warnings, err
	}

	cards, rw, err := g.RenderCards(records)
	warnings = append(warnings, rw...)
	if err != nil {
		return nil, warnings, err
	}

	if g.cfg.ExportCards && g.exporter != nil {
		for _, c := range cards {
			if err := g.exporter.Export(c); err != nil {
				return nil, warnings, fmt.Errorf("exporting cards: %w", err)
			}
		}
	}

	doc, err := sheet.Pack(cards, g.cfg)
	if err != nil {
		return nil, warnings, err
	}
	return doc, warnings, nil
}

func joinRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ", ")
}
