package export

import (
	"fmt"
	"strings"
)

// DefaultCommaReplacement is substituted for commas inside cells unless
// configured otherwise.
const DefaultCommaReplacement = ";"

// CSVExporter renders datasets as comma-delimited text: an unquoted header
// line, then one line per row with every cell double-quoted, lines joined by
// "\n" and no trailing newline.
type CSVExporter struct {
	// CommaReplacement replaces "," inside cells. Empty keeps commas, which
	// stay safe because every cell is quoted.
	CommaReplacement string
}

// NewCSVExporter builds an exporter that keeps the legacy comma substitution.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{CommaReplacement: DefaultCommaReplacement}
}

// NewLosslessCSVExporter builds an exporter that leaves cell content intact.
func NewLosslessCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType implements Renderer.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension implements Renderer.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV encoded bytes for the dataset. An empty dataset yields
// the header line alone.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	var b strings.Builder
	b.WriteString(strings.Join(data.Headers, ","))
	for i, row := range data.Rows {
		if len(row) > len(data.Headers) {
			return nil, fmt.Errorf("csv row %d has %d cells for %d headers", i, len(row), len(data.Headers))
		}
		b.WriteByte('\n')
		for col := range data.Headers {
			if col > 0 {
				b.WriteByte(',')
			}
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			b.WriteString(e.quote(cell))
		}
	}
	return []byte(b.String()), nil
}

func (e *CSVExporter) quote(cell string) string {
	if e.CommaReplacement != "" {
		cell = strings.ReplaceAll(cell, ",", e.CommaReplacement)
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
