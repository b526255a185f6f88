package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

func TestTransformRow_Accepted(t *testing.T) {
	out := transformRow([]string{"2024-01-15", "Grocery Store", "50.00", "0.00"}, 1, "acct-1", "batch-1")
	require.NotNil(t, out.draft)
	assert.Empty(t, out.issues)

	d := out.draft
	assert.Equal(t, "acct-1", d.AccountID)
	assert.Equal(t, day(2024, 1, 15), d.Date)
	assert.Equal(t, "Grocery Store", d.Description)
	assert.Equal(t, "-50.00", d.Amount.StringFixed(2))
	assert.Equal(t, model.DefaultCategory, d.Category)
	assert.False(t, d.Verified)
	assert.Equal(t, "batch-1", d.BatchID)
}

func TestTransformRow_BadDateStopsEarly(t *testing.T) {
	out := transformRow([]string{"not-a-date", "", "abc", "0.00"}, 5, "a", "b")
	assert.Nil(t, out.draft)
	require.Len(t, out.issues, 1)
	assert.Equal(t, model.ColumnDate, out.issues[0].Column)

	first, ok := out.firstError()
	require.True(t, ok)
	assert.Equal(t, 5, first.RowNumber)
}

func TestTransformRow_BadAmountKeepsOtherIssues(t *testing.T) {
	out := transformRow([]string{"01/15/2024", "", "abc", "0.00"}, 2, "a", "b")
	assert.Nil(t, out.draft)
	require.Len(t, out.issues, 3)
	assert.Equal(t, model.SeverityInfo, out.issues[0].Severity)
	assert.Equal(t, model.SeverityWarning, out.issues[1].Severity)
	assert.Equal(t, model.SeverityError, out.issues[2].Severity)
	assert.Equal(t, model.ColumnDebit, out.issues[2].Column)
}

func TestTransformRow_WarningsDoNotSkip(t *testing.T) {
	out := transformRow([]string{"2024-01-01", "", "50.00", "30.00"}, 1, "a", "b")
	require.NotNil(t, out.draft)
	assert.Len(t, out.issues, 2)
	_, hasErr := out.firstError()
	assert.False(t, hasErr)
}

func TestTransformRow_ShortRow(t *testing.T) {
	out := transformRow([]string{"2024-01-01", "Coffee"}, 3, "a", "b")
	require.NotNil(t, out.draft)
	assert.True(t, out.draft.Amount.IsZero())
}

func TestTransformRow_InvalidUTF8(t *testing.T) {
	out := transformRow([]string{"2024-01-01", "Caf\xe9", "1.00", ""}, 4, "a", "b")
	assert.Nil(t, out.draft)
	require.Len(t, out.issues, 1)
	assert.True(t, out.issues[0].IsError())
	assert.Empty(t, out.issues[0].Column)
	assert.Contains(t, out.issues[0].Message, "UTF-8")
}
