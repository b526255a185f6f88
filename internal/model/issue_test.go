package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(9), "severity(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sev.String())
	}
}

func TestSeverityText(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got Severity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	_, err := Severity(7).MarshalText()
	assert.Error(t, err)

	_, err = ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestIssueString(t *testing.T) {
	i := ValidationIssue{RowNumber: 3, Column: ColumnDate, Severity: SeverityError, Message: "bad"}
	assert.Equal(t, "Row 3 [Date]: bad", i.String())
	assert.True(t, i.IsError())

	i = ValidationIssue{RowNumber: 0, Severity: SeverityWarning, Message: "extra columns"}
	assert.Equal(t, "Row 0: extra columns", i.String())
	assert.False(t, i.IsError())
}

func TestIssuesWithSeverity(t *testing.T) {
	r := &ProcessingResult{Issues: []ValidationIssue{
		{RowNumber: 1, Severity: SeverityInfo},
		{RowNumber: 2, Severity: SeverityError},
		{RowNumber: 3, Severity: SeverityInfo},
	}}
	infos := r.IssuesWithSeverity(SeverityInfo)
	require.Len(t, infos, 2)
	assert.Equal(t, 3, infos[1].RowNumber)
	assert.Empty(t, r.IssuesWithSeverity(SeverityWarning))
	assert.Equal(t, 0, r.ProcessedRows())
}
