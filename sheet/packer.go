package sheet

import (
	"fmt"

	"github.com/printworks/cardpress/card"
	"github.com/printworks/cardpress/config"
	"github.com/printworks/cardpress/geom"
)

// Pack arranges cards into a grid across as many A4 pages as needed and
// returns the finalized document.
//
// Cards are placed left to right from x=0; the top row sits at
// page height - top margin - card height. After cards per row placements
// the next row starts, and a row that would begin below the page bottom
// finalizes the page and opens a fresh one at the first-row position.
// The trailing partial page is kept. Input order equals reading order.
//
// Zero cards produce a document with exactly one empty page.
func Pack(cards []*card.Card, cfg config.Config) (*Document, error) {
	if cfg.CardsPerRow < 1 {
		return nil, fmt.Errorf("cards per row must be at least 1, got %d", cfg.CardsPerRow)
	}

	doc := NewDocument(geom.A4())

	cardW := cfg.CardWidth.Points()
	cardH := cfg.CardHeight.Points()
	gap := cfg.Gap.Points()
	firstRowY := doc.Size().Height - cfg.TopMargin.Points() - cardH

	page := &Page{}
	x, y := 0.0, firstRowY
	col := 0

	for _, c := range cards {
		if col >= cfg.CardsPerRow {
			col = 0
			x = 0
			y -= cardH + gap
		}
		if y < 0 {
			if err := doc.AddPage(page); err != nil {
				return nil, err
			}
			page = &Page{}
			col, x, y = 0, 0, firstRowY
		}
		page.Placements = append(page.Placements, Placement{
			X:      x,
			Y:      y,
			Width:  cardW,
			Height: cardH,
			Card:   c,
		})
		col++
		x += cardW + gap
	}

	if err := doc.AddPage(page); err != nil {
		return nil, err
	}
	if err := doc.Close(); err != nil {
		return nil, err
	}
	return doc, nil
}
