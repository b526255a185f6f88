package model

import "fmt"

// Severity classifies a ValidationIssue.
type Severity int

const (
	// SeverityError means the field could not be produced.
	SeverityError Severity = iota
	// SeverityWarning means the field was produced but degraded.
	SeverityWarning
	// SeverityInfo means the field came from a non-primary path or is a benign anomaly.
	SeverityInfo
)

// String returns the lower-case wire name ("error", "warning", "info").
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity parses a wire name back into a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", name)
	}
}

// Column names used in issues.
const (
	ColumnDate        = "Date"
	ColumnDescription = "Description"
	ColumnDebit       = "Debit"
	ColumnCredit      = "Credit"
)

// ValidationIssue is one diagnostic produced while importing a table.
type ValidationIssue struct {
	RowNumber     int    // 1-based; 0 for table-level issues
	Column        string // empty for table-level and cross-field issues
	Severity      Severity
	Message       string
	OriginalValue string // raw cell text, empty when not applicable
}

// IsError reports whether the issue has error severity.
func (i ValidationIssue) IsError() bool {
	return i.Severity == SeverityError
}

// String renders the issue the way it is logged: "Row 3 [Date]: message".
func (i ValidationIssue) String() string {
	if i.Column == "" {
		return fmt.Sprintf("Row %d: %s", i.RowNumber, i.Message)
	}
	return fmt.Sprintf("Row %d [%s]: %s", i.RowNumber, i.Column, i.Message)
}
