package importer

import "github.com/cleared-dev/budgetcsv/internal/model"

// field is the outcome of parsing one cell: a value plus non-fatal notes, or
// an error-severity issue.
type field[T any] struct {
	value T
	notes []model.ValidationIssue
	err   *model.ValidationIssue
}

func ok[T any](v T, notes ...model.ValidationIssue) field[T] {
	return field[T]{value: v, notes: notes}
}

func fail[T any](issue model.ValidationIssue) field[T] {
	issue.Severity = model.SeverityError
	return field[T]{err: &issue}
}

// issues returns every issue in emission order.
func (f field[T]) issues() []model.ValidationIssue {
	if f.err == nil {
		return f.notes
	}
	return append(f.notes[:len(f.notes):len(f.notes)], *f.err)
}
