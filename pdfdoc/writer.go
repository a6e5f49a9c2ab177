// Package pdfdoc persists packed card sheets as PDF documents.
package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/printworks/cardpress/sheet"
)

// Writer renders documents into one io.Writer as PDF. It implements
// sheet.Sink.
type Writer struct {
	out io.Writer
}

// NewWriter returns a Writer targeting out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteDocument renders the document into the writer's destination.
func (w *Writer) WriteDocument(doc *sheet.Document) error {
	return Write(doc, w.out)
}

// Write renders doc as a PDF into out. Pages keep the document's size
// in points; every placement draws its card stretched to the placement
// box.
func Write(doc *sheet.Document, out io.Writer) error {
	if doc == nil || doc.PageCount() == 0 {
		return fmt.Errorf("document has no pages")
	}

	size := doc.Size()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for _, page := range doc.Pages() {
		pdf.AddPage()
		for i, p := range page.Placements {
			if p.Card == nil {
				return fmt.Errorf("page %d placement %d has no card", page.Number, i)
			}
			data, err := p.Card.ToPNG()
			if err != nil {
				return err
			}

			name := fmt.Sprintf("card-%d-%d", page.Number, i)
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
			// Placements are bottom-origin; PDF imaging starts at the top.
			yTop := size.Height - p.Y - p.Height
			pdf.ImageOptions(name, p.X, yTop, p.Width, p.Height, false, opts, 0, "")
		}
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// WriteFile renders doc as a PDF at path, creating parent directories
// as needed.
func WriteFile(doc *sheet.Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(doc, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ResolveOutputPath returns path unchanged when nothing exists there,
// otherwise the first free versioned variant: name_v2.pdf, name_v3.pdf
// and so on. Existing output is never overwritten.
func ResolveOutputPath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for idx := 2; ; idx++ {
		candidate := fmt.Sprintf("%s_v%d%s", stem, idx, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
