package importer

import (
	"fmt"
	"unicode/utf8"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// rowOutcome is the result of transforming one table row. draft is nil when
// the row must be skipped.
type rowOutcome struct {
	draft  *model.TransactionDraft
	issues []model.ValidationIssue
}

// firstError returns the first error-severity issue of the row.
func (o rowOutcome) firstError() (model.ValidationIssue, bool) {
	for _, i := range o.issues {
		if i.IsError() {
			return i, true
		}
	}
	return model.ValidationIssue{}, false
}

// transformRow turns table row n (1-based) into a draft. Date, description
// and amount are read in that order; a date failure stops the row early.
func transformRow(cells []string, n int, accountID, batchID string) (out rowOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = rowOutcome{issues: append(out.issues, model.ValidationIssue{
				RowNumber: n,
				Severity:  model.SeverityError,
				Message:   fmt.Sprint(r),
			})}
		}
	}()

	row := NewRow(cells)
	for i, c := range row {
		if c != nil && !utf8.ValidString(*c) {
			out.issues = append(out.issues, model.ValidationIssue{
				RowNumber: n,
				Severity:  model.SeverityError,
				Message:   fmt.Sprintf("cell %d is not valid UTF-8", i+1),
			})
			return out
		}
	}

	date := parseDate(row[colDate], n)
	out.issues = append(out.issues, date.issues()...)
	if date.err != nil {
		return out
	}

	desc := normalizeDescription(row[colDesc], n)
	out.issues = append(out.issues, desc.issues()...)

	amount := computeAmount(row[colDebit], row[colCredit], n)
	out.issues = append(out.issues, amount.issues()...)
	if amount.err != nil {
		return out
	}

	out.draft = &model.TransactionDraft{
		AccountID:   accountID,
		Date:        date.value,
		Description: desc.value,
		Amount:      amount.value,
		Category:    model.DefaultCategory,
		Verified:    false,
		BatchID:     batchID,
	}
	return out
}
