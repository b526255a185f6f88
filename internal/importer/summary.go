package importer

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// Summarize reduces accepted drafts into totals and a date span. Zero
// amounts count towards neither income nor expenses.
func Summarize(txns []model.TransactionDraft) model.Summary {
	s := model.Summary{
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		NetAmount:        decimal.Zero,
		TransactionCount: len(txns),
	}
	if len(txns) == 0 {
		return s
	}

	span := model.DateRange{Start: txns[0].Date, End: txns[0].Date}
	for _, t := range txns {
		switch {
		case t.Amount.IsPositive():
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case t.Amount.IsNegative():
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount.Abs())
		}
		if t.Date.Before(span.Start) {
			span.Start = t.Date
		}
		if t.Date.After(span.End) {
			span.End = t.Date
		}
	}
	s.NetAmount = s.TotalIncome.Sub(s.TotalExpenses)
	s.DateRange = &span
	return s
}
