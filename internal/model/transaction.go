package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to every imported transaction.
const DefaultCategory = "Uncategorized"

// TransactionDraft is an accepted bank row, ready for a persistence collaborator.
type TransactionDraft struct {
	AccountID   string // caller-supplied, opaque
	Date        time.Time
	Description string          // at most 500 characters
	Amount      decimal.Decimal // credit - debit; negative = expense, positive = income
	Category    string
	Verified    bool
	BatchID     string
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Summary aggregates the accepted transactions of one batch.
type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal // absolute value of all negative amounts
	NetAmount        decimal.Decimal
	DateRange        *DateRange // nil when no rows were accepted
	TransactionCount int
}

// ProcessingResult is the output of one successful pipeline invocation.
type ProcessingResult struct {
	Success      bool
	BatchID      string
	TotalRows    int
	Transactions []TransactionDraft
	SkippedRows  int
	Issues       []ValidationIssue
	Summary      Summary
}

// ProcessedRows returns the number of accepted rows.
func (r *ProcessingResult) ProcessedRows() int {
	return len(r.Transactions)
}

// IssuesWithSeverity returns the issues of one severity, in order.
func (r *ProcessingResult) IssuesWithSeverity(s Severity) []ValidationIssue {
	var out []ValidationIssue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}
