package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lectioapp/lectio-server/internal/domain"
)

// PDF renders the note as an A4 PDF document.
func PDF(note *domain.Note) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Lecture Notes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr("Source: "+note.SourceURL), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i, topic := range note.Notes {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, tr(fmt.Sprintf("%d. %s", i+1, topic.TopicName)), "", "L", false)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, formatTimestamp(topic.StartTime)+" - "+formatTimestamp(topic.EndTime), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		for _, bullet := range topic.Explanation {
			pdf.MultiCell(0, 6, tr("  \x95 "+bullet), "", "L", false)
		}
		pdf.Ln(2)

		if len(topic.ScreenContent) > 0 {
			writeSubheading(pdf, "On Screen")
			pdf.SetFont("Helvetica", "", 10)
			for _, line := range topic.ScreenContent {
				pdf.MultiCell(0, 5, tr("  - "+line), "", "L", false)
			}
			pdf.Ln(2)
		}

		if len(topic.FormulasOrDiagrams) > 0 {
			writeSubheading(pdf, "Formulas")
			pdf.SetFont("Courier", "", 10)
			for _, f := range topic.FormulasOrDiagrams {
				pdf.MultiCell(0, 5, tr("  "+f), "", "L", false)
			}
			pdf.Ln(2)
		}

		if topic.Diagram != "" {
			writeSubheading(pdf, "Diagram")
			pdf.SetFont("Courier", "", 9)
			pdf.MultiCell(0, 5, tr(topic.Diagram), "", "L", false)
			pdf.Ln(2)
		}

		for _, block := range topic.CodeSections {
			writeSubheading(pdf, "Code ("+block.Language+")")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(block.Explanation), "", "L", false)
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 5, tr(block.Code), "", "L", true)
			pdf.SetFont("Helvetica", "", 9)
			for _, line := range block.LineByLine {
				pdf.MultiCell(0, 5, tr(fmt.Sprintf("  Line %d: %s", line.LineNumber, line.Explanation)), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSubheading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
