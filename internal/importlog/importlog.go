// Package importlog keeps the append-only audit trail of import batches.
package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Action names recorded in the log.
const (
	ActionImport = "import"
	ActionUndo   = "undo"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp     time.Time
	Action        string
	BatchID       string
	AccountID     string
	Source        string
	TotalRows     int
	ProcessedRows int
	SkippedRows   int
	IssueCount    int
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,action,batch_id,account_id,source,total_rows,processed_rows,skipped_rows,issue_count"

const (
	numFields        = 9
	logDir           = "logs"
	logFile          = "logs/import-log.csv"
	colTimestamp     = 0
	colAction        = 1
	colBatchID       = 2
	colAccountID     = 3
	colSource        = 4
	colTotalRows     = 5
	colProcessedRows = 6
	colSkippedRows   = 7
	colIssueCount    = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colBatchID] = e.BatchID
	row[colAccountID] = e.AccountID
	row[colSource] = e.Source
	row[colTotalRows] = strconv.Itoa(e.TotalRows)
	row[colProcessedRows] = strconv.Itoa(e.ProcessedRows)
	row[colSkippedRows] = strconv.Itoa(e.SkippedRows)
	row[colIssueCount] = strconv.Itoa(e.IssueCount)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 4)
	for i, col := range []int{colTotalRows, colProcessedRows, colSkippedRows, colIssueCount} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[i] = n
	}

	return Entry{
		Timestamp:     ts,
		Action:        record[colAction],
		BatchID:       record[colBatchID],
		AccountID:     record[colAccountID],
		Source:        record[colSource],
		TotalRows:     counts[0],
		ProcessedRows: counts[1],
		SkippedRows:   counts[2],
		IssueCount:    counts[3],
	}, nil
}

// Append writes entries to <root>/logs/import-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Imports returns import entries whose batch has not been undone, oldest first.
func Imports(entries []Entry) []Entry {
	undone := make(map[string]bool)
	for _, e := range entries {
		if e.Action == ActionUndo {
			undone[e.BatchID] = true
		}
	}
	var out []Entry
	for _, e := range entries {
		if e.Action == ActionImport && !undone[e.BatchID] {
			out = append(out, e)
		}
	}
	return out
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
