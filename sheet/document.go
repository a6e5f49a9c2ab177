package sheet

import (
	"errors"

	"github.com/printworks/cardpress/card"
	"github.com/printworks/cardpress/geom"
)

// Placement positions one card on a page. Coordinates are PDF points,
// origin at the bottom-left page corner; X and Y locate the card's
// bottom-left corner. The card raster is stretched to Width x Height
// without preserving aspect ratio, which is safe because it was rendered
// to the same proportions.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Card          *card.Card
}

// Page is one fixed-size canvas of placed cards.
type Page struct {
	Number     int // 1-indexed, stamped by Document.AddPage
	Placements []Placement
}

// Document is an ordered sequence of pages, built incrementally and
// finalized exactly once.
type Document struct {
	size   geom.PageSize
	pages  []*Page
	closed bool
}

// NewDocument creates an empty document whose pages all share size.
func NewDocument(size geom.PageSize) *Document {
	return &Document{size: size}
}

// Size returns the shared page size in points.
func (d *Document) Size() geom.PageSize {
	return d.size
}

// AddPage appends a page and stamps its number.
func (d *Document) AddPage(p *Page) error {
	if d.closed {
		return errors.New("document already finalized")
	}
	p.Number = len(d.pages) + 1
	d.pages = append(d.pages, p)
	return nil
}

// Pages returns the pages in order.
func (d *Document) Pages() []*Page {
	return d.pages
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.pages) {
		return nil
	}
	return d.pages[number-1]
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Close finalizes the document. Closing twice is an error.
func (d *Document) Close() error {
	if d.closed {
		return errors.New("document already finalized")
	}
	d.closed = true
	return nil
}

// Closed reports whether the document has been finalized.
func (d *Document) Closed() bool {
	return d.closed
}
