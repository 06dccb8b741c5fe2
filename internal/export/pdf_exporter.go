package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
)

const (
	pdfFontFamily     = "Arial"
	pdfFontSize       = 8.0
	pdfHeaderFontSize = 8.5
	pdfTitleFontSize  = 14.0
	pdfRowHeight      = 6.0
	pdfMargin         = 10.0
)

// WritePDF writes the project table to w as a landscape A4 document with a
// styled header row and alternating row fills.
func WritePDF(w io.Writer, list []*projects.ProjectData) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont(pdfFontFamily, "B", pdfTitleFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "CO2e Projects", "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFontFamily, "", pdfFontSize-1)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	widths := columnWidths(pdf, list)

	// Header row, same green as the XLSX export.
	pdf.SetFont(pdfFontFamily, "B", pdfHeaderFontSize)
	pdf.SetFillColor(46, 125, 50)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range columns {
		pdf.CellFormat(widths[i], pdfRowHeight, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(pdfRowHeight)

	pdf.SetFont(pdfFontFamily, "", pdfFontSize)
	pdf.SetTextColor(0, 0, 0)
	for rowIdx, p := range list {
		fill := rowIdx%2 == 1
		if fill {
			pdf.SetFillColor(242, 242, 242)
		}
		for i, val := range rowFor(p) {
			pdf.CellFormat(widths[i], pdfRowHeight, val, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// columnWidths sizes each column to its widest cell, then scales the set to
// fill the printable width.
func columnWidths(pdf *gofpdf.Fpdf, list []*projects.ProjectData) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pdfMargin

	widths := make([]float64, len(columns))
	pdf.SetFont(pdfFontFamily, "B", pdfHeaderFontSize)
	for i, col := range columns {
		widths[i] = pdf.GetStringWidth(col) + 4
	}

	pdf.SetFont(pdfFontFamily, "", pdfFontSize)
	for _, p := range list {
		for i, val := range rowFor(p) {
			if w := pdf.GetStringWidth(val) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	scale := available / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}
