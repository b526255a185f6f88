package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/budgetcsv/internal/decode"
	"github.com/cleared-dev/budgetcsv/internal/importer"
	"github.com/cleared-dev/budgetcsv/internal/model"
)

func process(t *testing.T, csv string, strict bool) (*model.ProcessingResult, error) {
	t.Helper()
	return decode.ProcessCSV([]byte(csv), "utf-8", importer.Options{AccountID: "1", Strict: strict})
}

func TestPipeline_Scenario(t *testing.T) {
	result, err := process(t, "2024-01-15,Grocery Store,50.00,0.00\n2024-01-16,Salary,0.00,3000.00", false)
	require.NoError(t, err)

	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "-50.00", result.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "3000.00", result.Transactions[1].Amount.StringFixed(2))
	assert.Equal(t, "3000.00", result.Summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "50.00", result.Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "2950.00", result.Summary.NetAmount.StringFixed(2))
	assert.Equal(t, 2, result.Summary.TransactionCount)
}

func TestPipeline_EmptyCells(t *testing.T) {
	result, err := process(t, "2024-01-15,Coffee,,5.00\n2024-01-15,Expense,50.00,\n2024-01-15,Nothing,,", false)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)
	assert.Equal(t, "5.00", result.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "-50.00", result.Transactions[1].Amount.StringFixed(2))
	assert.Equal(t, "0.00", result.Transactions[2].Amount.StringFixed(2))

	infos := result.IssuesWithSeverity(model.SeverityInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, 3, infos[0].RowNumber)
}

func TestPipeline_AccountingNegativeDebit(t *testing.T) {
	result, err := process(t, "2024-01-01,Refund,(50.00),0.00", false)
	require.NoError(t, err)
	assert.Equal(t, "50.00", result.Transactions[0].Amount.StringFixed(2))
}

func TestPipeline_MonetaryNotations(t *testing.T) {
	result, err := process(t, "2024-01-01,Test,$1000.00,0.00\n2024-01-01,Test,\"1,000.00\",0.00", false)
	require.NoError(t, err)
	for _, txn := range result.Transactions {
		assert.Equal(t, "-1000.00", txn.Amount.StringFixed(2))
	}
}

func TestPipeline_InvalidDateLenient(t *testing.T) {
	result, err := process(t, "not-a-date,Description,10.00,0.00", false)
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
	assert.Equal(t, 1, result.SkippedRows)

	errs := result.IssuesWithSeverity(model.SeverityError)
	require.Len(t, errs, 1)
	assert.Equal(t, model.ColumnDate, errs[0].Column)
	assert.Nil(t, result.Summary.DateRange)
}

func TestPipeline_InvalidDateStrict(t *testing.T) {
	result, err := process(t, "invalid-date,Description,10.00,0.00", true)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, importer.ErrValidation)
}

func TestPipeline_AlternativeDates(t *testing.T) {
	result, err := process(t, "01/15/2024,US,10.00,0.00\n15/01/2024,EU,10.00,0.00", false)
	require.NoError(t, err)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, txn := range result.Transactions {
		assert.Equal(t, want, txn.Date)
	}
}

func TestPipeline_ThreeColumns(t *testing.T) {
	result, err := process(t, "2024-01-01,Description,100.00", false)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, importer.ErrColumn)
}

func TestPipeline_EmptyInput(t *testing.T) {
	_, err := process(t, "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, importer.ErrParsing)
	assert.Contains(t, err.Error(), "empty")
}

func TestPipeline_LongDescription(t *testing.T) {
	result, err := process(t, "2024-01-01,"+strings.Repeat("A", 600)+",10.00,0.00", false)
	require.NoError(t, err)
	assert.Len(t, result.Transactions[0].Description, 500)

	found := false
	for _, i := range result.Issues {
		if i.Severity == model.SeverityWarning && strings.Contains(strings.ToLower(i.Message), "truncated") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPipeline_SingleBatchID(t *testing.T) {
	result, err := process(t, "2024-01-01,A,10.00,0.00\n2024-01-02,B,20.00,0.00", false)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, txn := range result.Transactions {
		ids[txn.BatchID] = true
	}
	assert.Len(t, ids, 1)
	assert.True(t, ids[result.BatchID])
}

func TestPipeline_Idempotent(t *testing.T) {
	input := "2024-01-01,A,10.00,0.00\n03/04/2024,B,,20.00\nbad,C,1,1"
	first, err := process(t, input, false)
	require.NoError(t, err)
	second, err := process(t, input, false)
	require.NoError(t, err)

	assert.NotEqual(t, first.BatchID, second.BatchID)
	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.SkippedRows, second.SkippedRows)
	require.Len(t, second.Transactions, len(first.Transactions))
	for i := range first.Transactions {
		a, b := first.Transactions[i], second.Transactions[i]
		assert.Equal(t, a.Date, b.Date)
		assert.Equal(t, a.Description, b.Description)
		assert.True(t, a.Amount.Equal(b.Amount))
		assert.Equal(t, a.AccountID, b.AccountID)
	}
}

func TestPipeline_AmountIsCreditMinusDebit(t *testing.T) {
	tests := []struct{ debit, credit, want string }{
		{"50.00", "30.00", "-20.00"},
		{"0.004", "0.006", "0.01"},
		{"1,234.56", "$2,000", "765.44"},
		{"(10)", "(5)", "5.00"},
	}
	for _, tt := range tests {
		result, err := process(t, "2024-01-01,X,\""+tt.debit+"\",\""+tt.credit+"\"", false)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, tt.want, result.Transactions[0].Amount.StringFixed(2), "%s / %s", tt.debit, tt.credit)
	}
}
