package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

const (
	// MaxDescriptionLength is the longest stored description, in characters.
	MaxDescriptionLength = 500
	// EmptyDescription replaces a blank description.
	EmptyDescription = "No description"
)

// normalizeDescription never fails; it degrades to a placeholder or a
// truncated value with a warning.
func normalizeDescription(cell *string, row int) field[string] {
	desc := strings.TrimSpace(raw(cell))
	if desc == "" {
		return ok(EmptyDescription, model.ValidationIssue{
			RowNumber:     row,
			Column:        model.ColumnDescription,
			Severity:      model.SeverityWarning,
			Message:       fmt.Sprintf("Description is empty, using '%s'", EmptyDescription),
			OriginalValue: raw(cell),
		})
	}

	n := utf8.RuneCountInString(desc)
	if n <= MaxDescriptionLength {
		return ok(desc)
	}

	runes := []rune(desc)
	return ok(string(runes[:MaxDescriptionLength]), model.ValidationIssue{
		RowNumber: row,
		Column:    model.ColumnDescription,
		Severity:  model.SeverityWarning,
		Message:   fmt.Sprintf("Description truncated from %d to %d characters", n, MaxDescriptionLength),
	})
}
