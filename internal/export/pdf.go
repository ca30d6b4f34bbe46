package export

import (
	"bytes"
	"fmt"

	"github.com/dudafacio/rsvp-api/internal/attendees"
	"github.com/go-pdf/fpdf"
)

// PDFRenderer renders the attendee list as an A4 PDF, optionally in two
// balanced columns.
type PDFRenderer struct{}

func (PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; names with accents need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, m := range doc.Meta {
		pdf.CellFormat(0, 6, tr(m), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if doc.TwoColumns {
		left, right := attendees.SplitColumns(doc.Items)
		for i := range left {
			pdf.CellFormat(95, 6, tr(left[i]), "", 0, "L", false, 0, "")
			if i < len(right) {
				pdf.CellFormat(95, 6, tr(right[i]), "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	} else {
		for i, it := range doc.Items {
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s", i+1, it)), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (PDFRenderer) Extension() string {
	return "pdf"
}
