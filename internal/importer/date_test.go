package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

func cell(s string) *string { return &s }

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_Primary(t *testing.T) {
	f := parseDate(cell(" 2024-01-15 "), 1)
	require.Nil(t, f.err)
	assert.Equal(t, day(2024, 1, 15), f.value)
	assert.Empty(t, f.issues())

	f = parseDate(cell("2024-1-5"), 1)
	require.Nil(t, f.err)
	assert.Equal(t, day(2024, 1, 5), f.value)
}

func TestParseDate_Fallbacks(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		format string
	}{
		{"01/15/2024", day(2024, 1, 15), "MM/DD/YYYY"},
		{"15/01/2024", day(2024, 1, 15), "DD/MM/YYYY"},
		{"01-15-2024", day(2024, 1, 15), "MM-DD-YYYY"},
		{"2024/01/15", day(2024, 1, 15), "YYYY/MM/DD"},
		{"15-01-2024", day(2024, 1, 15), "DD-MM-YYYY"},
		// Ambiguous: first format in the list wins.
		{"03/04/2024", day(2024, 3, 4), "MM/DD/YYYY"},
		{"03-04-2024", day(2024, 3, 4), "MM-DD-YYYY"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := parseDate(cell(tt.in), 7)
			require.Nil(t, f.err)
			assert.Equal(t, tt.want, f.value)
			require.Len(t, f.issues(), 1)
			issue := f.issues()[0]
			assert.Equal(t, model.SeverityInfo, issue.Severity)
			assert.Equal(t, model.ColumnDate, issue.Column)
			assert.Equal(t, 7, issue.RowNumber)
			assert.Equal(t, tt.in, issue.OriginalValue)
			assert.Contains(t, issue.Message, tt.format)
		})
	}
}

func TestParseDate_Missing(t *testing.T) {
	for _, c := range []*string{nil, cell(""), cell("   ")} {
		f := parseDate(c, 2)
		require.NotNil(t, f.err)
		assert.Equal(t, model.SeverityError, f.err.Severity)
		assert.Equal(t, model.ColumnDate, f.err.Column)
		assert.Equal(t, "Date is required but missing", f.err.Message)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"not-a-date", "2024-02-30", "13/13/2024", "2024-01-15T10:00:00"} {
		f := parseDate(cell(in), 4)
		require.NotNil(t, f.err, in)
		assert.Equal(t, in, f.err.OriginalValue)
		assert.Contains(t, f.err.Message, "Expected YYYY-MM-DD")
		assert.Len(t, f.issues(), 1)
	}
}
