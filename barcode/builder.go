// Package barcode rasterizes EAN-13 identifiers into bar patterns sized
// for card placement.
//
// The bars are first drawn at their natural print geometry, then scaled
// so the output width matches the requested width exactly. Height scales
// by an independent percentage: width fidelity to the layout grid is a
// hard constraint, height is a visual tuning knob. No digit caption is
// drawn beneath the bars.
package barcode

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/boombuler/barcode/ean"
	xdraw "golang.org/x/image/draw"

	"github.com/printworks/cardpress/geom"
)

// Natural geometry of an EAN-13 symbol, in millimeters. An EAN-13 code
// is always 95 modules wide, flanked by light quiet zones.
const (
	modules     = 95
	moduleWidth = 0.2
	barHeight   = 15.0
	quietZone   = 6.5
)

// Build encodes a 13-digit identifier and rasterizes it to exactly
// targetWidth pixels wide. heightScale is a percentage applied to the
// width-correct natural height; the result is never shorter than one
// pixel.
//
// The encoder re-derives the check digit from the first 12 digits. A
// mismatch with the supplied 13th digit means an unnormalized value
// reached this stage and is reported as an error.
func Build(identifier string, targetWidth int, heightScale float64) (*image.RGBA, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("barcode target width must be positive, got %d", targetWidth)
	}
	if len(identifier) != 13 {
		return nil, fmt.Errorf("barcode identifier must be 13 digits, got %d", len(identifier))
	}

	code, err := ean.Encode(identifier[:12])
	if err != nil {
		return nil, fmt.Errorf("encoding barcode: %w", err)
	}
	if got := code.Content(); got != identifier {
		return nil, fmt.Errorf("check digit mismatch: encoder derived %s for %s", got, identifier)
	}

	natural := rasterize(code)

	if heightScale < 0.001 {
		heightScale = 0.001
	}
	factor := float64(targetWidth) / float64(natural.Bounds().Dx())
	height := int(math.Round(float64(natural.Bounds().Dy()) * factor * heightScale / 100))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), natural, natural.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// rasterize draws the 95-module pattern at natural print size. Module
// edges land on whole pixels via the shared rounding, so adjacent bars
// stay contiguous.
func rasterize(code image.Image) *image.RGBA {
	width := geom.Millimeters(2*quietZone + modules*moduleWidth).Pixels()
	height := geom.Millimeters(barHeight).Pixels()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for i := 0; i < modules; i++ {
		r, _, _, _ := code.At(i, 0).RGBA()
		if r != 0 {
			continue
		}
		x0 := geom.Millimeters(quietZone + float64(i)*moduleWidth).Pixels()
		x1 := geom.Millimeters(quietZone + float64(i+1)*moduleWidth).Pixels()
		fillRect(img, x0, 0, x1, height, color.RGBA{A: 0xff})
	}
	return img
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
