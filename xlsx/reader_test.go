package xlsx

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/printworks/cardpress/diag"
)

// writeArchive writes a ZIP file with exactly the given entries.
func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return path
}

// workbookFiles assembles a minimal single-sheet workbook around the
// given sheetData rows.
func workbookFiles(rows string) map[string]string {
	return map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
</Types>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`,
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Roster" sheetId="1" r:id="rId1"/>
  </sheets>
</workbook>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>` + rows + `</sheetData>
</worksheet>`,
	}
}

// writeWorkbook writes a single-sheet workbook with an optional shared
// string table.
func writeWorkbook(t *testing.T, rows string, sharedStrings []string) string {
	t.Helper()

	files := workbookFiles(rows)
	if len(sharedStrings) > 0 {
		var sst strings.Builder
		fmt.Fprintf(&sst, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`,
			len(sharedStrings), len(sharedStrings))
		for _, s := range sharedStrings {
			fmt.Fprintf(&sst, "<si><t>%s</t></si>", s)
		}
		sst.WriteString("</sst>")
		files["xl/sharedStrings.xml"] = sst.String()
	}
	return writeArchive(t, files)
}

// ============================================================================
// Record extraction
// ============================================================================

func TestReadRecords(t *testing.T) {
	path := writeWorkbook(t, `
    <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
    <row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>4006381333931</v></c></row>
    <row r="3"><c r="A3" t="inlineStr"><is><t>Петров Пётр</t></is></c><c r="B3"><v>4.6006820046E+11</v></c></row>
    <row r="5"><c r="A5" t="s"><v>3</v></c><c r="B5" t="s"><v>4</v></c></row>`,
		[]string{"ФИО", "Штрихкод", "Иванов Иван Иванович", "Sidorov", "123-456-789-0128"})

	records, warnings, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ReadRecords() warnings = %v, want none", warnings)
	}
	if len(records) != 3 {
		t.Fatalf("ReadRecords() returned %d records, want 3", len(records))
	}

	// Row numbers are the Excel row numbers, including the gap at row 4.
	wantRows := []int{2, 3, 5}
	wantNames := []string{"Иванов Иван Иванович", "Петров Пётр", "Sidorov"}
	for i, rec := range records {
		if rec.Row != wantRows[i] || rec.Name != wantNames[i] {
			t.Errorf("record %d = (%d, %q), want (%d, %q)", i, rec.Row, rec.Name, wantRows[i], wantNames[i])
		}
	}

	// Number cells keep their numeric type, text cells stay strings.
	if v, ok := records[0].Identifier.(float64); !ok || v != 4006381333931 {
		t.Errorf("record 0 identifier = %#v, want float64 4006381333931", records[0].Identifier)
	}
	if v, ok := records[1].Identifier.(float64); !ok || v != 460068200460 {
		t.Errorf("record 1 identifier = %#v, want float64 460068200460", records[1].Identifier)
	}
	if v, ok := records[2].Identifier.(string); !ok || v != "123-456-789-0128" {
		t.Errorf("record 2 identifier = %#v, want the raw string cell", records[2].Identifier)
	}
}

func TestRecordsFiltering(t *testing.T) {
	path := writeWorkbook(t, `
    <row r="1"><c r="A1" t="inlineStr"><is><t>ФИО</t></is></c><c r="B1" t="inlineStr"><is><t>Штрихкод</t></is></c></row>
    <row r="2"><c r="A2" t="inlineStr"><is><t>Иванов Иван</t></is></c><c r="B2"><v>4006381333931</v></c></row>
    <row r="3"><c r="A3" t="inlineStr"><is><t>   </t></is></c><c r="B3" t="inlineStr"><is><t>  </t></is></c></row>
    <row r="4"><c r="A4" t="inlineStr"><is><t></t></is></c><c r="B4"><v>1234567890128</v></c></row>
    <row r="5"><c r="A5" t="inlineStr"><is><t>Петров Пётр</t></is></c><c r="B5" t="inlineStr"><is><t>12-34</t></is></c></row>
    <row r="6"><c r="A6" t="inlineStr"><is><t>Сидоров Семён</t></is></c></row>`,
		nil)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.SheetName() != "Roster" {
		t.Errorf("SheetName() = %q, want %q", r.SheetName(), "Roster")
	}

	records, warnings, err := r.Records()
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 || records[0].Row != 2 {
		t.Fatalf("Records() = %+v, want only row 2", records)
	}

	// Blank rows and empty names drop silently; bad identifiers warn.
	if len(warnings) != 2 {
		t.Fatalf("Records() warnings = %v, want two", warnings)
	}
	for _, w := range warnings {
		if w.Code != diag.CodeRecord {
			t.Errorf("warning code = %q, want %q", w.Code, diag.CodeRecord)
		}
	}
	if !strings.Contains(warnings[0].Message, "row 5") || !strings.Contains(warnings[0].Message, "4 digits") {
		t.Errorf("warning %q does not describe the short identifier", warnings[0].Message)
	}
	if !strings.Contains(warnings[1].Message, "row 6") || !strings.Contains(warnings[1].Message, "empty") {
		t.Errorf("warning %q does not describe the missing identifier", warnings[1].Message)
	}
}

func TestRecordsRichTextNames(t *testing.T) {
	files := workbookFiles(`
    <row r="1"><c r="A1" t="inlineStr"><is><t>ФИО</t></is></c></row>
    <row r="2"><c r="A2" t="s"><v>0</v></c><c r="B2"><v>4006381333931</v></c></row>`)
	files["xl/sharedStrings.xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si><r><t>Ива</t></r><r><t>нов Иван</t></r></si>
</sst>`

	records, _, err := ReadRecords(writeArchive(t, files))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Иванов Иван" {
		t.Errorf("records = %+v, want the rich text runs concatenated", records)
	}
}

func TestRecordsEmptyRoster(t *testing.T) {
	path := writeWorkbook(t, `
    <row r="1"><c r="A1" t="inlineStr"><is><t>ФИО</t></is></c><c r="B1" t="inlineStr"><is><t>Штрихкод</t></is></c></row>`,
		nil)

	_, _, err := ReadRecords(path)
	if err == nil {
		t.Fatal("ReadRecords() accepted a roster with no records")
	}
	if !strings.Contains(err.Error(), "no card records") {
		t.Errorf("error %q does not name the empty roster", err)
	}
}

// ============================================================================
// Open failures
// ============================================================================

func TestOpenErrors(t *testing.T) {
	t.Run("not an archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.xlsx")
		if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Open(path); err == nil || !strings.Contains(err.Error(), "opening ZIP archive") {
			t.Errorf("Open() error = %v, want a ZIP error", err)
		}
	})

	t.Run("missing workbook", func(t *testing.T) {
		path := writeArchive(t, map[string]string{
			"[Content_Types].xml": `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		})
		if _, err := Open(path); err == nil || !strings.Contains(err.Error(), "missing required file") {
			t.Errorf("Open() error = %v, want a missing file error", err)
		}
	})

	t.Run("no sheets", func(t *testing.T) {
		path := writeArchive(t, map[string]string{
			"[Content_Types].xml": `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
			"xl/workbook.xml": `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheets/>
</workbook>`,
		})
		if _, err := Open(path); err == nil || !strings.Contains(err.Error(), "no worksheets") {
			t.Errorf("Open() error = %v, want a no-worksheets error", err)
		}
	})
}
