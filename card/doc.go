// Package card renders individual ID cards: a bordered white raster
// carrying the holder's normalized name and an EAN-13 barcode.
//
// # Rendering
//
// A [Renderer] is built once per run and reused for every record, so the
// font resolves once. Geometry comes from the configuration in
// millimeters and is converted to pixels at the fixed resolution; the
// barcode raster is produced by the barcode package at the configured
// target width.
//
// # Fonts
//
// Font resolution is a chain of [FaceSource] values tried in order: the
// configured font file (with platform lookups and narrow-sans aliases),
// a bundled face with Cyrillic coverage, and finally an engine builtin
// that cannot fail. Each miss is reported as a warning, never an error;
// rendering always proceeds with some glyph source.
package card
