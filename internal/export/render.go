package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"baliance.com/gooxml/document"
	"github.com/go-pdf/fpdf"
)

// DefaultTitle heads PDF and DOCX exports.
const DefaultTitle = "Career Recommendations"

// Write renders rows in the given format.
func Write(w io.Writer, format Format, title string, rows []Row) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatPDF:
		return WritePDF(w, title, rows)
	case FormatDOCX:
		return WriteDOCX(w, title, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// Render is Write into a byte slice.
func Render(format Format, title string, rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, title, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes a header row followed by one line per career.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.values()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Page geometry in millimetres (US Letter, one inch margins).
const (
	pdfInch       = 25.4
	pdfPageHeight = 279.4
	pdfTitleGap   = 0.3 * pdfInch
	pdfLineHeight = 0.22 * pdfInch
	pdfLineLimit  = 110
)

// pdfLines lays a row out as labelled lines plus a blank separator.
func pdfLines(r Row) []string {
	return []string{
		"Career: " + r.Career,
		"Description: " + r.Description,
		"Experience: " + r.Experience,
		"Salary: " + r.Salary,
		"Required Skills: " + r.RequiredSkills,
		"",
	}
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// WritePDF draws a title and every row as clipped single lines, starting a
// new page when the bottom margin is reached.
func WritePDF(w io.Writer, title string, rows []Row) error {
	if title == "" {
		title = DefaultTitle
	}
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	y := pdfInch
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pdfInch, y, tr(title))
	y += pdfTitleGap

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		for _, line := range pdfLines(r) {
			if y > pdfPageHeight-pdfInch {
				pdf.AddPage()
				pdf.SetFont("Helvetica", "", 10)
				y = pdfInch
			}
			pdf.Text(pdfInch, y, tr(clip(line, pdfLineLimit)))
			y += pdfLineHeight
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// WriteDOCX writes a Word document with a heading and one labelled
// paragraph block per career.
func WriteDOCX(w io.Writer, title string, rows []Row) error {
	if title == "" {
		title = DefaultTitle
	}
	doc := document.New()

	heading := doc.AddParagraph()
	heading.SetStyle("Title")
	heading.AddRun().AddText(title)

	for _, r := range rows {
		for i, v := range r.values() {
			para := doc.AddParagraph()
			label := para.AddRun()
			label.Properties().SetBold(true)
			label.AddText(Columns[i] + ": ")
			para.AddRun().AddText(v)
		}
		doc.AddParagraph()
	}

	if err := doc.Save(w); err != nil {
		return fmt.Errorf("failed to render docx: %w", err)
	}
	return nil
}
