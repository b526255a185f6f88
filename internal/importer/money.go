package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// moneyStripper removes currency symbols, thousands separators and spaces.
var moneyStripper = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
	" ", "",
)

// parseMoney parses one Debit or Credit cell into a 2-decimal value.
// Null cells are zero. Parentheses and a leading minus each mark the value
// negative; they do not cancel, so "(-5)" is -5.00. A second minus left after
// the first is stripped flips the sign again, so "--5" and "(--5)" are 5.00.
func parseMoney(cell *string, column string, row int) field[decimal.Decimal] {
	if cell == nil || strings.TrimSpace(*cell) == "" {
		return ok(decimal.Zero)
	}

	s := strings.TrimSpace(*cell)
	negative := false
	if len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = moneyStripper.Replace(s)

	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	v, err := parseFixed(s)
	if err != nil {
		return fail[decimal.Decimal](model.ValidationIssue{
			RowNumber:     row,
			Column:        column,
			Message:       fmt.Sprintf("Invalid monetary value: '%s'", *cell),
			OriginalValue: *cell,
		})
	}
	if negative {
		v = v.Neg()
	}
	return ok(v.RoundBank(2))
}

// parseFixed accepts plain decimal text: one optional leading sign, digits
// (optionally grouped by single underscores between digits) and at most one
// ".". Exponents are rejected; decimal.NewFromString alone would take them.
// The sign here applies before the caller's negative flag, so "--5" is 5.00.
func parseFixed(s string) (decimal.Decimal, error) {
	body := s
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "" || body == "." {
		return decimal.Decimal{}, fmt.Errorf("empty number %q", s)
	}
	dots := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '.':
			dots++
		case c == '_':
			if i == 0 || i == len(body)-1 || !isDigit(body[i-1]) || !isDigit(body[i+1]) {
				return decimal.Decimal{}, fmt.Errorf("misplaced underscore in %q", s)
			}
		case !isDigit(c):
			return decimal.Decimal{}, fmt.Errorf("invalid character %q in %q", c, s)
		}
	}
	if dots > 1 {
		return decimal.Decimal{}, fmt.Errorf("multiple decimal points in %q", s)
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(body, "_", ""))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if strings.HasPrefix(s, "-") {
		v = v.Neg()
	}
	return v, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// computeAmount parses both money cells and returns credit - debit.
func computeAmount(debitCell, creditCell *string, row int) field[decimal.Decimal] {
	debit := parseMoney(debitCell, model.ColumnDebit, row)
	credit := parseMoney(creditCell, model.ColumnCredit, row)

	var errs []model.ValidationIssue
	for _, f := range []field[decimal.Decimal]{debit, credit} {
		if f.err != nil {
			errs = append(errs, *f.err)
		}
	}
	if len(errs) > 0 {
		last := errs[len(errs)-1]
		return field[decimal.Decimal]{notes: errs[:len(errs)-1], err: &last}
	}

	amount := credit.value.Sub(debit.value)

	var notes []model.ValidationIssue
	if !debit.value.IsZero() && !credit.value.IsZero() {
		notes = append(notes, model.ValidationIssue{
			RowNumber: row,
			Severity:  model.SeverityWarning,
			Message: fmt.Sprintf("Both debit (%s) and credit (%s) are non-zero",
				debit.value.StringFixed(2), credit.value.StringFixed(2)),
		})
	}
	if amount.IsZero() {
		notes = append(notes, model.ValidationIssue{
			RowNumber: row,
			Severity:  model.SeverityInfo,
			Message:   "Transaction amount is $0.00",
		})
	}
	return ok(amount, notes...)
}
