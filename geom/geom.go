package geom

import "math"

// DPI is the raster resolution for card images, in pixels per inch.
const DPI = 300

// Conversion factors between physical units.
const (
	MMPerInch     = 25.4
	PointsPerInch = 72.0
)

// A4 page dimensions.
const (
	A4Width  Millimeters = 210
	A4Height Millimeters = 297
)

// Millimeters is a physical length in millimeters.
type Millimeters float64

// Points converts the length to PDF points.
func (m Millimeters) Points() float64 {
	return float64(m) / MMPerInch * PointsPerInch
}

// Pixels converts the length to raster pixels at DPI, rounded to the
// nearest whole pixel.
func (m Millimeters) Pixels() int {
	return int(math.Round(float64(m) / MMPerInch * DPI))
}

// Points is a length in PDF points (1/72 inch).
type Points float64

// Pixels converts the length to raster pixels at DPI, rounded to the
// nearest whole pixel.
func (p Points) Pixels() int {
	return int(math.Round(float64(p) / PointsPerInch * DPI))
}

// PageSize is a page extent in points.
type PageSize struct {
	Width  float64
	Height float64
}

// A4 returns the A4 page size in points.
func A4() PageSize {
	return PageSize{Width: A4Width.Points(), Height: A4Height.Points()}
}
