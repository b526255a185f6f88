package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "batch_id,account_id,date,description,amount,category,verified"

const (
	numFields   = 7
	dateFormat  = "2006-01-02"
	colBatch    = 0
	colAcctID   = 1
	colDate     = 2
	colDesc     = 3
	colAmount   = 4
	colCategory = 5
	colVerified = 6
)

// ReadDrafts reads all rows from a transactions.csv reader.
func ReadDrafts(r io.Reader) ([]model.TransactionDraft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.TransactionDraft
	for i, rec := range records[1:] {
		txn, err := UnmarshalDraft(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteDrafts writes a full transactions.csv (including header).
func WriteDrafts(w io.Writer, txns []model.TransactionDraft) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalDraft(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendDrafts appends rows to an existing transactions.csv writer (no header).
func AppendDrafts(w io.Writer, txns []model.TransactionDraft) error {
	cw := csv.NewWriter(w)

	for i, txn := range txns {
		if err := cw.Write(MarshalDraft(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalDraft converts a draft to a CSV row.
func MarshalDraft(txn model.TransactionDraft) []string {
	row := make([]string, numFields)
	row[colBatch] = txn.BatchID
	row[colAcctID] = txn.AccountID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colCategory] = txn.Category
	row[colVerified] = strconv.FormatBool(txn.Verified)
	return row
}

// UnmarshalDraft converts a CSV row to a draft.
func UnmarshalDraft(record []string) (model.TransactionDraft, error) {
	if len(record) != numFields {
		return model.TransactionDraft{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.TransactionDraft{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.TransactionDraft{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	verified, err := strconv.ParseBool(record[colVerified])
	if err != nil {
		return model.TransactionDraft{}, fmt.Errorf("parsing verified %q: %w", record[colVerified], err)
	}

	return model.TransactionDraft{
		BatchID:     record[colBatch],
		AccountID:   record[colAcctID],
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Category:    record[colCategory],
		Verified:    verified,
	}, nil
}
