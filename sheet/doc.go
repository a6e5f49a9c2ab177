// Package sheet arranges rendered cards into a paginated document.
//
// The packer walks the card sequence in input order and fills a grid:
// left to right within a row, rows top to bottom, pages in sequence.
// Placement coordinates are PDF points with the origin at the
// bottom-left page corner, so a sink can hand them to a PDF writer with
// a single axis flip at most.
//
// The [Document] produced here is pure layout: which card goes where on
// which page. Writing it to a file is a [Sink] implementation's job.
package sheet
