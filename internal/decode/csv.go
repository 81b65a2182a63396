package decode

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVDecoder flattens CSV rows into "header: value" lines, one line per row.
type CSVDecoder struct{}

func (d *CSVDecoder) Decode(r io.Reader) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	// First row is headers.
	headers := records[0]

	var buf strings.Builder
	for _, row := range records[1:] {
		for j, cell := range row {
			if j > 0 {
				buf.WriteString(", ")
			}
			if j < len(headers) {
				buf.WriteString(headers[j] + ": " + cell)
			} else {
				buf.WriteString(cell)
			}
		}
		buf.WriteString("\n")
	}
	return buf.String(), nil
}
