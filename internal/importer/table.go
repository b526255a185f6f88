package importer

import "strings"

// RequiredColumns is the fixed width of the input contract: Date, Description, Debit, Credit.
const RequiredColumns = 4

const (
	colDate   = 0
	colDesc   = 1
	colDebit  = 2
	colCredit = 3
)

// RawTable is a decoded table of text cells. Row widths may vary.
type RawTable [][]string

// Width returns the declared column count, taken from the first row.
func (t RawTable) Width() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Row holds the first RequiredColumns cells of a table row. A nil slot is a
// missing or null cell; extra cells are dropped.
type Row [RequiredColumns]*string

// nullSentinels are cell values read as "no value".
var nullSentinels = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"nan":  true,
	"NaN":  true,
	"#N/A": true,
	"<NA>": true,
}

// NewRow builds a Row from raw cells.
func NewRow(cells []string) Row {
	var row Row
	for i := 0; i < RequiredColumns && i < len(cells); i++ {
		if isNull(cells[i]) {
			continue
		}
		c := cells[i]
		row[i] = &c
	}
	return row
}

func isNull(s string) bool {
	return nullSentinels[strings.TrimSpace(s)]
}

// raw returns the slot's text, or "" for a null slot.
func raw(cell *string) string {
	if cell == nil {
		return ""
	}
	return *cell
}
