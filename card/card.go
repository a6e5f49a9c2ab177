package card

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
)

// Card is one rendered ID card.
type Card struct {
	Name       string // canonical "SURNAME I.O." form
	Identifier string // 13-digit EAN-13
	Image      *image.RGBA
}

// EncodePNG writes the card raster to w as PNG.
func (c *Card) EncodePNG(w io.Writer) error {
	if c.Image == nil {
		return errors.New("card has no image")
	}
	if err := png.Encode(w, c.Image); err != nil {
		return fmt.Errorf("encoding card %s: %w", c.Identifier, err)
	}
	return nil
}

// ToPNG returns the card raster as PNG bytes.
func (c *Card) ToPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
