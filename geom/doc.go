// Package geom provides the physical units used throughout cardpress.
//
// Card dimensions and offsets are configured in millimeters, card rasters
// are drawn in pixels at a fixed resolution, and page layout is expressed
// in PDF points. This package owns the conversions between those spaces so
// that rounding happens in exactly one place.
//
// # Units
//
//   - [Millimeters] - physical lengths as they appear in configuration
//   - [Points] - PDF points (1/72 inch), the page layout space
//   - pixels - plain ints, produced by the conversion methods at [DPI]
//
// A value crosses from one space to another only through a conversion
// method; no other package multiplies by a resolution constant directly.
package geom
