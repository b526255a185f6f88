package importer

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the fatal failures of an import.
type ErrorKind int

const (
	// KindParsing means the input could not be decoded into a table.
	KindParsing ErrorKind = iota + 1
	// KindColumn means the table declares fewer than RequiredColumns columns.
	KindColumn
	// KindValidation means the table is empty or a strict-mode row failed.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindParsing:
		return "parsing"
	case KindColumn:
		return "column"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrParsing    = &Error{Kind: KindParsing}
	ErrColumn     = &Error{Kind: KindColumn}
	ErrValidation = &Error{Kind: KindValidation}
)

// Error is the typed failure returned instead of a ProcessingResult.
type Error struct {
	Kind ErrorKind
	Row  int // offending row for strict-mode aborts, 0 otherwise
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ParsingError reports input that is empty or not decodable as text.
func ParsingError(msg string, cause error) *Error {
	return &Error{Kind: KindParsing, Msg: msg, Err: cause}
}

// ColumnError reports a table that is too narrow.
func ColumnError(msg string) *Error {
	return &Error{Kind: KindColumn, Msg: msg}
}

// ValidationError reports an empty table (row 0) or the row that aborted a strict import.
func ValidationError(row int, msg string) *Error {
	if row > 0 {
		msg = fmt.Sprintf("Row %d: %s", row, msg)
	}
	return &Error{Kind: KindValidation, Row: row, Msg: msg}
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
