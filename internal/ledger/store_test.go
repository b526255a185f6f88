package ledger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func draft(batch, desc, amount string) model.TransactionDraft {
	return model.TransactionDraft{
		AccountID:   "chequing",
		Date:        date(2024, 1, 15),
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Category:    model.DefaultCategory,
		BatchID:     batch,
	}
}

func TestRoundTrip(t *testing.T) {
	txns := []model.TransactionDraft{
		draft("b1", "Grocery Store", "-50.00"),
		draft("b1", `Salary, "January"`, "3000.00"),
	}
	txns[1].Verified = true

	var buf bytes.Buffer
	require.NoError(t, WriteDrafts(&buf, txns))
	assert.True(t, strings.HasPrefix(buf.String(), "batch_id,"))

	got, err := ReadDrafts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range txns {
		assert.Equal(t, txns[i].BatchID, got[i].BatchID)
		assert.Equal(t, txns[i].AccountID, got[i].AccountID)
		assert.True(t, txns[i].Date.Equal(got[i].Date))
		assert.Equal(t, txns[i].Description, got[i].Description)
		assert.True(t, txns[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, txns[i].Category, got[i].Category)
		assert.Equal(t, txns[i].Verified, got[i].Verified)
	}
}

func TestMarshalDraft(t *testing.T) {
	row := MarshalDraft(draft("b1", "Coffee", "-5"))
	assert.Equal(t, []string{"b1", "chequing", "2024-01-15", "Coffee", "-5.00", "Uncategorized", "false"}, row)
}

func TestUnmarshalDraft_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"short", []string{"b1"}, "expected 7 fields"},
		{"date", []string{"b1", "a", "15/01/2024", "d", "1.00", "c", "false"}, "parsing date"},
		{"amount", []string{"b1", "a", "2024-01-15", "d", "x", "c", "false"}, "parsing amount"},
		{"verified", []string{"b1", "a", "2024-01-15", "d", "1.00", "c", "maybe"}, "parsing verified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDraft(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStore_RecordAndRead(t *testing.T) {
	s := NewStore(t.TempDir())

	all, err := s.All()
	require.NoError(t, err)
	assert.Nil(t, all)

	require.NoError(t, s.Record([]model.TransactionDraft{draft("b1", "A", "-1.00"), draft("b1", "B", "2.00")}))
	require.NoError(t, s.Record([]model.TransactionDraft{draft("b2", "C", "3.00")}))
	require.NoError(t, s.Record(nil))

	all, err = s.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[2].Description)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))

	b1, err := s.Batch("b1")
	require.NoError(t, err)
	assert.Len(t, b1, 2)
}

func TestStore_RecordRejectsMixedBatches(t *testing.T) {
	s := NewStore(t.TempDir())
	err := s.Record([]model.TransactionDraft{draft("b1", "A", "1"), draft("b2", "B", "1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mixed batch IDs")
}

func TestStore_DeleteBatch(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Record([]model.TransactionDraft{draft("b1", "A", "-1.00"), draft("b1", "B", "2.00")}))
	require.NoError(t, s.Record([]model.TransactionDraft{draft("b2", "C", "3.00")}))

	n, err := s.DeleteBatch("b1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b2", all[0].BatchID)

	_, err = s.DeleteBatch("b1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBatchNotFound)
	assert.Contains(t, err.Error(), "no transactions found for batch ID b1")
}
