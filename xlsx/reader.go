// Package xlsx reads card rosters from XLSX (Office Open XML
// Spreadsheet) workbooks: one row per card, the holder's name in the
// first column and the identifier in the second.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/printworks/cardpress"
	"github.com/printworks/cardpress/diag"
)

// rowData is one worksheet row with its original 1-indexed number.
type rowData struct {
	number int
	cells  []any
}

func (r rowData) cell(col int) any {
	if col < len(r.cells) {
		return r.cells[col]
	}
	return nil
}

// Reader provides access to the card roster inside a workbook. Only the
// first worksheet is read.
type Reader struct {
	archive       *zip.ReadCloser
	sharedStrings []string
	sheetName     string
	rows          []rowData
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{archive: zr}
	if err := r.parse(); err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the underlying archive.
func (r *Reader) Close() error {
	if r.archive == nil {
		return nil
	}
	err := r.archive.Close()
	r.archive = nil
	return err
}

// parse walks the archive parts in dependency order. The shared string
// table is optional; a roster of pure number cells has none.
func (r *Reader) parse() error {
	if err := r.validate(); err != nil {
		return err
	}

	rels, err := r.parseRelationships()
	if err != nil {
		return fmt.Errorf("parsing relationships: %w", err)
	}

	wb, err := r.parseWorkbook()
	if err != nil {
		return fmt.Errorf("parsing workbook: %w", err)
	}

	_ = r.parseSharedStrings()

	if err := r.parseWorksheet(wb, rels); err != nil {
		return fmt.Errorf("parsing worksheet: %w", err)
	}
	return nil
}

// validate confirms the parts every workbook must carry are present.
func (r *Reader) validate() error {
	present := make(map[string]bool, len(r.archive.File))
	for _, f := range r.archive.File {
		present[f.Name] = true
	}
	for _, name := range []string{"[Content_Types].xml", "xl/workbook.xml"} {
		if !present[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// partContent returns the named part of the archive.
func (r *Reader) partContent(name string) ([]byte, error) {
	for _, f := range r.archive.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part not found: %s", name)
}

// parseRelationships maps workbook relationship IDs to part paths. The
// rels part itself is optional; sheet lookup falls back to default part
// names when it is absent.
func (r *Reader) parseRelationships() (map[string]string, error) {
	data, err := r.partContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		data, err = r.partContent("xl/_rels/workbook.rels")
		if err != nil {
			return nil, nil
		}
	}

	var doc relationshipsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	rels := make(map[string]string, len(doc.Relationship))
	for _, rel := range doc.Relationship {
		rels[rel.ID] = rel.Target
	}
	return rels, nil
}

func (r *Reader) parseWorkbook() (*workbookXML, error) {
	data, err := r.partContent("xl/workbook.xml")
	if err != nil {
		return nil, err
	}

	var wb workbookXML
	if err := xml.Unmarshal(data, &wb); err != nil {
		return nil, err
	}
	return &wb, nil
}

// parseSharedStrings loads the string table that s-typed cells index
// into.
func (r *Reader) parseSharedStrings() error {
	data, err := r.partContent("xl/sharedStrings.xml")
	if err != nil {
		return err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, 0, len(sst.SI))
	for _, si := range sst.SI {
		r.sharedStrings = append(r.sharedStrings, flattenRuns(si.T, si.R))
	}
	return nil
}

// flattenRuns reduces a string item to plain text: the direct text node
// when present, otherwise its rich text runs joined in order.
func flattenRuns(text string, runs []runXML) string {
	if text != "" || len(runs) == 0 {
		return text
	}
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.T)
	}
	return b.String()
}

// parseWorksheet locates and decodes the roster sheet, the first one in
// the workbook. Row and column positions fall back to document order
// when a generator omits the r attributes.
func (r *Reader) parseWorksheet(wb *workbookXML, rels map[string]string) error {
	if wb == nil || len(wb.Sheets.Sheet) == 0 {
		return fmt.Errorf("no worksheets found")
	}
	ref := wb.Sheets.Sheet[0]

	target := rels[ref.RID]
	if target == "" {
		target = "worksheets/sheet1.xml"
	}
	if !strings.HasPrefix(target, "xl/") && !strings.HasPrefix(target, "/") {
		target = "xl/" + target
	}
	target = strings.TrimPrefix(target, "/")

	data, err := r.partContent(target)
	if err != nil {
		data, err = r.partContent("xl/" + strings.TrimPrefix(target, "xl/"))
		if err != nil {
			return err
		}
	}

	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return err
	}

	r.sheetName = ref.Name
	r.rows = make([]rowData, 0, len(ws.SheetData.Rows))
	next := 1
	for _, row := range ws.SheetData.Rows {
		number := row.R
		if number == 0 {
			number = next
		}
		next = number + 1

		cells := make([]any, 0, len(row.Cells))
		for _, c := range row.Cells {
			col := columnIndex(c.R)
			if col < 0 {
				col = len(cells)
			}
			for len(cells) <= col {
				cells = append(cells, nil)
			}
			cells[col] = r.decodeCell(c)
		}
		r.rows = append(r.rows, rowData{number: number, cells: cells})
	}
	return nil
}

// SheetName returns the name of the roster sheet.
func (r *Reader) SheetName() string {
	return r.sheetName
}

// Records extracts the card records in row order. Row 1 is skipped as
// the header, fully blank rows and rows without a name are skipped
// silently, and rows whose identifier cell does not clean to 12 or 13
// digits are skipped with a warning. A roster with no usable rows is an
// error.
//
// Identifiers keep their cell type: number cells surface as float64,
// text cells as string. Normalization happens downstream.
func (r *Reader) Records() ([]cardpress.RawRecord, []diag.Warning, error) {
	var records []cardpress.RawRecord
	var warnings []diag.Warning

	for _, row := range r.rows {
		if row.number == 1 {
			continue
		}
		if blankRow(row.cells) {
			continue
		}

		name := displayString(row.cell(0))
		if strings.TrimSpace(name) == "" {
			continue
		}

		identifier := row.cell(1)
		if identifier == nil {
			warnings = append(warnings, diag.Warningf(diag.CodeRecord,
				"row %d: identifier is empty, row skipped", row.number))
			continue
		}
		if n := digitCount(identifier); n != 12 && n != 13 {
			warnings = append(warnings, diag.Warningf(diag.CodeRecord,
				"row %d: identifier cleans to %d digits, need 12 or 13, row skipped", row.number, n))
			continue
		}

		records = append(records, cardpress.RawRecord{
			Row:        row.number,
			Name:       name,
			Identifier: identifier,
		})
	}

	if len(records) == 0 {
		return nil, warnings, fmt.Errorf("workbook has no card records")
	}

	return records, warnings, nil
}

// ReadRecords opens filename and extracts its card records in one call.
func ReadRecords(filename string) ([]cardpress.RawRecord, []diag.Warning, error) {
	r, err := Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	return r.Records()
}

// The XML mappings below cover the only four parts the roster needs:
// the workbook sheet list, its relationships, the shared string table
// and the worksheet grid. Attributes the card source never reads
// (styles, dimensions, merge spans) have no fields; the decoder skips
// them.

type workbookXML struct {
	XMLName xml.Name  `xml:"workbook"`
	Sheets  sheetsXML `xml:"sheets"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

// sheetRefXML is one entry of the workbook sheet list. RID keys the
// relationship map to the worksheet part path.
type sheetRefXML struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"`
}

type worksheetXML struct {
	XMLName   xml.Name     `xml:"worksheet"`
	SheetData sheetDataXML `xml:"sheetData"`
}

type sheetDataXML struct {
	Rows []rowXML `xml:"row"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // 1-indexed row number, 0 when omitted
	Cells []cellXML `xml:"c"`
}

// cellXML is one worksheet cell. T selects the decoding: "s" indexes
// the shared string table, "b" is a boolean, "inlineStr" carries its
// text in Is, "" and "n" are numbers.
type cellXML struct {
	R  string        `xml:"r,attr"` // cell reference, "B7"
	T  string        `xml:"t,attr"`
	V  string        `xml:"v"`
	Is *inlineStrXML `xml:"is"`
}

type inlineStrXML struct {
	T string   `xml:"t"`
	R []runXML `xml:"r"`
}

type sharedStringsXML struct {
	XMLName xml.Name        `xml:"sst"`
	SI      []stringItemXML `xml:"si"`
}

// stringItemXML is one shared string: plain text in T or rich text runs
// in R, never both.
type stringItemXML struct {
	T string   `xml:"t"`
	R []runXML `xml:"r"`
}

type runXML struct {
	T string `xml:"t"`
}

type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}
