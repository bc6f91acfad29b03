package tabular

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF layout constants. These are deliberately not caller-configurable.
const (
	pdfTitleSize  = 14.0
	pdfHeaderSize = 9.0
	pdfCellSize   = 8.0
	pdfRowHeight  = 7.0
)

// ExportPDF renders an optional title and a styled table, one row per
// record and one column per cols entry. Nil values render as "-".
func ExportPDF(rows []map[string]interface{}, cols []Column, title string) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", pdfTitleSize)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(cols))

	// Header band in the dashboard accent color
	pdf.SetFont("Helvetica", "B", pdfHeaderSize)
	pdf.SetFillColor(79, 70, 229)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range cols {
		pdf.CellFormat(colWidth, pdfRowHeight, col.Header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", pdfCellSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(243, 244, 246)
	for i, row := range rows {
		fill := i%2 == 1
		for _, col := range cols {
			pdf.CellFormat(colWidth, pdfRowHeight, cellString(row[col.Key], "-"), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
