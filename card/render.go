package card

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/printworks/cardpress/barcode"
	"github.com/printworks/cardpress/config"
	"github.com/printworks/cardpress/diag"
	"github.com/printworks/cardpress/geom"
)

// Pixels kept clear between the text block and a vertically centered
// barcode.
const barcodeTextGap = 2

// RenderError reports a card that could not be drawn. Values reaching
// the renderer should already be normalized, so this signals a contract
// violation rather than bad user input.
type RenderError struct {
	Identifier string
	Err        error
}

// Error names the offending identifier.
func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering card %s: %v", e.Identifier, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error { return e.Err }

// Renderer draws cards for one configuration. The font face resolves
// once at construction and is reused for every card.
type Renderer struct {
	cfg  config.Config
	face font.Face
}

// NewRenderer builds a renderer, resolving the font through the given
// chain. Font fallbacks surface as warnings; construction itself cannot
// fail.
func NewRenderer(cfg config.Config, resolver *Resolver) (*Renderer, []diag.Warning) {
	face, warnings := resolver.Resolve(cfg.FontSize)
	return &Renderer{cfg: cfg, face: face}, warnings
}

// Render draws one card: white canvas, border, name text, barcode.
func (r *Renderer) Render(name, identifier string) (*Card, error) {
	cardW := r.cfg.CardWidth.Pixels()
	cardH := r.cfg.CardHeight.Pixels()
	border := borderWidth(r.cfg.BorderThickness)

	img := image.NewRGBA(image.Rect(0, 0, cardW, cardH))
	fillWhite(img)
	drawBorder(img, border)

	textBottom := r.drawName(img, name, border)

	bc, err := barcode.Build(identifier, r.cfg.BarcodeWidth.Pixels(), r.cfg.BarcodeHeightScale)
	if err != nil {
		return nil, &RenderError{Identifier: identifier, Err: err}
	}
	r.placeBarcode(img, bc, border, textBottom)

	return &Card{Name: name, Identifier: identifier, Image: img}, nil
}

// drawName draws the holder's name and returns the lowest pixel row the
// text occupies; a vertically centered barcode never rises above it.
func (r *Renderer) drawName(img *image.RGBA, name string, border int) int {
	textY := r.cfg.TextTopOffset.Pixels()
	if name == "" {
		return textY
	}

	bounds, _ := font.BoundString(r.face, name)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if textW <= 0 || textH <= 0 {
		return textY
	}

	cardW := img.Bounds().Dx()

	if r.cfg.TextOrient == config.Vertical {
		// Ink-tight transparent layer, rotated a quarter turn so the
		// text reads bottom to top, pasted centered with its alpha.
		layer := image.NewRGBA(image.Rect(0, 0, textW, textH))
		d := font.Drawer{
			Dst:  layer,
			Src:  image.Black,
			Face: r.face,
			Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
		}
		d.DrawString(name)

		rotated := rotateCCW(layer)
		rw, rh := rotated.Bounds().Dx(), rotated.Bounds().Dy()
		x := (cardW - rw) / 2
		draw.Draw(img, image.Rect(x, textY, x+rw, textY+rh), rotated, image.Point{}, draw.Over)
		return textY + rh
	}

	// Any orientation other than vertical renders horizontally.
	x := (cardW - textW) / 2
	if x < border {
		x = border
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: r.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(textY) - bounds.Min.Y,
		},
	}
	d.DrawString(name)
	return textY + textH
}

// placeBarcode composites the barcode raster, right-aligned by offset
// and floored at the border on both axes.
func (r *Renderer) placeBarcode(img *image.RGBA, bc *image.RGBA, border, textBottom int) {
	cardW := img.Bounds().Dx()
	cardH := img.Bounds().Dy()
	bcW := bc.Bounds().Dx()
	bcH := bc.Bounds().Dy()

	x := cardW - r.cfg.BarcodeRightOffset.Pixels() - bcW
	if x < border {
		x = border
	}

	var y int
	if r.cfg.BarcodeTopOffset != nil {
		y = int(float64(cardH) * *r.cfg.BarcodeTopOffset / 100)
	} else {
		y = (cardH - bcH) / 2
		if floor := textBottom + barcodeTextGap; y < floor {
			y = floor
		}
	}
	if y < border {
		y = border
	}

	draw.Draw(img, image.Rect(x, y, x+bcW, y+bcH), bc, image.Point{}, draw.Src)
}

// borderWidth is the border stroke in pixels, never below one.
func borderWidth(t geom.Millimeters) int {
	if px := t.Pixels(); px > 1 {
		return px
	}
	return 1
}

func fillWhite(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
}

// drawBorder strokes the card outline inward from the edges.
func drawBorder(img *image.RGBA, width int) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	black := color.RGBA{A: 0xff}
	fillRect(img, 0, 0, w, width, black)
	fillRect(img, 0, h-width, w, h, black)
	fillRect(img, 0, 0, width, h, black)
	fillRect(img, w-width, 0, w, h, black)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// rotateCCW turns a layer 90 degrees counterclockwise.
func rotateCCW(src *image.RGBA) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetRGBA(x, y, src.RGBAAt(w-1-y, x))
		}
	}
	return dst
}
