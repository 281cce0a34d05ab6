package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// csvBatchSize is the number of data rows per page.
const csvBatchSize = 20

// CSVParser handles CSV files. Each batch of data rows becomes one page
// headed "Rows a-b", numbered as in the source file.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := newDocument(filename)
	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		var text strings.Builder
		fmt.Fprintf(&text, "Rows %d-%d\n", i+2, end+1) // 1-indexed, skip header
		for _, row := range dataRows[i:end] {
			cells := make([]string, len(row))
			for j, cell := range row {
				if j < len(headers) {
					cells[j] = headers[j] + ": " + cell
				} else {
					cells[j] = cell
				}
			}
			text.WriteString("- " + strings.Join(cells, ", ") + "\n")
		}

		doc.Pages = append(doc.Pages, document.Page{
			Number: len(doc.Pages) + 1,
			Text:   strings.TrimRight(text.String(), "\n"),
		})
	}

	return doc, nil
}
