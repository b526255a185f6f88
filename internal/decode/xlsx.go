package decode

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/budgetcsv/internal/importer"
)

// XLSXDecoder reads the first sheet of a spreadsheet export. Cell text is
// already Unicode, so the encoding argument is ignored.
type XLSXDecoder struct{}

// Format returns the decoder name.
func (d *XLSXDecoder) Format() string { return "xlsx" }

// Decode converts the first sheet's rows into a table, dropping empty rows.
func (d *XLSXDecoder) Decode(data []byte, _ string) (importer.RawTable, error) {
	if len(data) == 0 {
		return nil, importer.ParsingError("spreadsheet file is empty", nil)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, importer.ParsingError(fmt.Sprintf("Failed to open spreadsheet: %v", err), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, importer.ParsingError("spreadsheet has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, importer.ParsingError(fmt.Sprintf("Failed to read sheet %q: %v", sheets[0], err), err)
	}

	var table importer.RawTable
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		table = append(table, r)
	}
	if len(table) == 0 {
		return nil, importer.ParsingError("spreadsheet file is empty", nil)
	}
	return table, nil
}
