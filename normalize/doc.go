// Package normalize turns raw spreadsheet values into canonical records:
// EAN-13 identifiers with a verified check digit, and person names in
// "SURNAME I.O." form. It also provides the advisory duplicate scan that
// runs before rendering.
//
// All functions are pure. Failures carry enough context to act on (the
// expected check digit, the observed digit count), and callers attach the
// offending source row via [ValidationError].
package normalize
