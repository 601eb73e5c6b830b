package report

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 40
	pdfLineHeight = 16
)

func renderPDF(lines []string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetTitle("AI Career Advisor Report", true)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	// core fonts are cp1252
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range lines {
		if line == "" {
			doc.Ln(pdfLineHeight / 2)
			continue
		}
		doc.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
