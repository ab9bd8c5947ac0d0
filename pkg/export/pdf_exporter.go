package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth   = 277.0
	pdfMinColWidth = 18.0
	pdfRowHeight   = 6.0
	pdfMaxCellRune = 60
)

// PDFRenderer lays a dataset out as a landscape A4 table. Column widths follow
// the longest cell of each column, scaled to the page.
type PDFRenderer struct{}

// Render implements Renderer.
func (PDFRenderer) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, errors.New("pdf export needs at least one column")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(data.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	widths := columnWidths(pdf, data)
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range data.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})
	header()

	for _, row := range data.Rows {
		for i := range data.Columns {
			cell := ""
			if i < len(row) {
				cell = clip(row[i])
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(pdf *gofpdf.Fpdf, data Dataset) []float64 {
	pdf.SetFont("Arial", "", 8)
	widths := make([]float64, len(data.Columns))
	total := 0.0
	for i, col := range data.Columns {
		w := pdf.GetStringWidth(col) + 4
		for _, row := range data.Rows {
			if i < len(row) {
				if cw := pdf.GetStringWidth(clip(row[i])) + 4; cw > w {
					w = cw
				}
			}
		}
		if w < pdfMinColWidth {
			w = pdfMinColWidth
		}
		widths[i] = w
		total += w
	}
	if total > pdfPageWidth {
		scale := pdfPageWidth / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= pdfMaxCellRune {
		return s
	}
	return string(r[:pdfMaxCellRune-1]) + "…"
}
