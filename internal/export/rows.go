// Package export renders career recommendations as downloadable documents.
package export

import (
	"fmt"
	"strings"

	"github.com/jonathan/directionwise/internal/types"
)

// MaxRows caps how many careers go into one export.
const MaxRows = 5

// Columns is the export column order.
var Columns = []string{"Career", "Description", "Experience", "Salary", "Required Skills"}

// Row is one exported career.
type Row struct {
	Career         string `json:"career"`
	Description    string `json:"description"`
	Experience     string `json:"experience"`
	Salary         string `json:"salary"`
	RequiredSkills string `json:"required_skills"`
}

func (r Row) values() []string {
	return []string{r.Career, r.Description, r.Experience, r.Salary, r.RequiredSkills}
}

// BuildRows turns up to MaxRows career records into export rows.
func BuildRows(careers []types.CareerRecord) []Row {
	if len(careers) > MaxRows {
		careers = careers[:MaxRows]
	}
	rows := make([]Row, 0, len(careers))
	for _, c := range careers {
		rows = append(rows, Row{
			Career:         c.Name,
			Description:    c.Description,
			Experience:     c.ExperienceBand,
			Salary:         c.SalaryBand,
			RequiredSkills: strings.Join(c.RequiredSkills, ", "),
		})
	}
	return rows
}

// BuildRowsByName resolves career names against a field's records. Names
// the field does not describe get a row with only the career name.
func BuildRowsByName(names []string, field *types.KnowledgeField) []Row {
	if len(names) > MaxRows {
		names = names[:MaxRows]
	}
	records := make([]types.CareerRecord, 0, len(names))
	for _, name := range names {
		rec := types.CareerRecord{Name: name}
		if field != nil {
			if found, ok := field.Career(name); ok {
				rec = found
			}
		}
		records = append(records, rec)
	}
	return BuildRows(records)
}

// Format is an export document type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF, FormatDOCX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// Extension is the file extension of the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}
