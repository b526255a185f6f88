package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// dateFormat pairs a Go layout with the name reported in issues.
type dateFormat struct {
	layout string
	name   string
}

// primaryDate is accepted silently. Single-digit month/day layouts also
// accept zero-padded input.
var primaryDate = dateFormat{layout: "2006-1-2", name: "YYYY-MM-DD"}

// fallbackDates are tried in order after primaryDate; the first match wins.
// Ambiguous input such as 03/04/2024 therefore resolves as MM/DD/YYYY.
var fallbackDates = []dateFormat{
	{layout: "1/2/2006", name: "MM/DD/YYYY"},
	{layout: "2/1/2006", name: "DD/MM/YYYY"},
	{layout: "1-2-2006", name: "MM-DD-YYYY"},
	{layout: "2006/1/2", name: "YYYY/MM/DD"},
	{layout: "2-1-2006", name: "DD-MM-YYYY"},
}

// parseDate parses the Date cell of row.
func parseDate(cell *string, row int) field[time.Time] {
	if cell == nil || strings.TrimSpace(*cell) == "" {
		return fail[time.Time](model.ValidationIssue{
			RowNumber:     row,
			Column:        model.ColumnDate,
			Message:       "Date is required but missing",
			OriginalValue: raw(cell),
		})
	}

	s := strings.TrimSpace(*cell)
	if d, err := time.Parse(primaryDate.layout, s); err == nil {
		return ok(d)
	}

	for _, f := range fallbackDates {
		d, err := time.Parse(f.layout, s)
		if err != nil {
			continue
		}
		return ok(d, model.ValidationIssue{
			RowNumber:     row,
			Column:        model.ColumnDate,
			Severity:      model.SeverityInfo,
			Message:       fmt.Sprintf("Date parsed with alternative format '%s'", f.name),
			OriginalValue: s,
		})
	}

	return fail[time.Time](model.ValidationIssue{
		RowNumber:     row,
		Column:        model.ColumnDate,
		Message:       fmt.Sprintf("Invalid date format. Expected YYYY-MM-DD, got '%s'", s),
		OriginalValue: s,
	})
}
