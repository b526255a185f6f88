package importer

import (
	"fmt"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// validateStructure checks the table as a whole before any row is read.
// A table wider than RequiredColumns is accepted with one table-level warning.
func validateStructure(t RawTable) ([]model.ValidationIssue, error) {
	if len(t) == 0 {
		return nil, ValidationError(0, "CSV file contains no data rows")
	}

	width := t.Width()
	if width < RequiredColumns {
		return nil, ColumnError(fmt.Sprintf(
			"CSV must have at least %d columns, found %d. Expected: Date, Description, Debit, Credit",
			RequiredColumns, width))
	}

	if width > RequiredColumns {
		return []model.ValidationIssue{{
			RowNumber: 0,
			Severity:  model.SeverityWarning,
			Message: fmt.Sprintf("CSV has %d columns, expected %d. Extra columns will be ignored.",
				width, RequiredColumns),
		}}, nil
	}
	return nil, nil
}
