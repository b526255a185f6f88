package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/cleared-dev/budgetcsv/internal/importer"
	"github.com/cleared-dev/budgetcsv/internal/model"
)

// CSVDecoder reads headerless bank CSV exports. Blank lines are skipped and
// rows may have different widths.
type CSVDecoder struct{}

// Format returns the decoder name.
func (d *CSVDecoder) Format() string { return "csv" }

// Decode converts data in the named encoding into a table.
func (d *CSVDecoder) Decode(data []byte, encoding string) (importer.RawTable, error) {
	if len(data) == 0 {
		return nil, importer.ParsingError("CSV file is empty", nil)
	}

	text, err := ToUTF8(data, encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, importer.ParsingError(fmt.Sprintf("Failed to parse CSV: %v", err), err)
	}
	if len(records) == 0 {
		return nil, importer.ParsingError("CSV file is empty", nil)
	}
	return importer.RawTable(records), nil
}

// ProcessCSV decodes a CSV export and runs it through a fresh Processor.
func ProcessCSV(data []byte, encoding string, opts importer.Options) (*model.ProcessingResult, error) {
	return importer.NewProcessor(opts).Run(&CSVDecoder{}, data, encoding)
}
