// Package ledger stores accepted transaction drafts in ledger/transactions.csv.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// ErrBatchNotFound is returned when a batch has no rows in the ledger.
var ErrBatchNotFound = errors.New("batch not found")

const ledgerFile = "transactions.csv"

// Store appends and removes batches of drafts under <root>/ledger.
type Store struct {
	root string
}

// NewStore creates a ledger Store rooted at a workspace directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return filepath.Join(s.root, "ledger", ledgerFile)
}

// Record appends every draft of a result. Drafts must share one batch ID.
func (s *Store) Record(txns []model.TransactionDraft) error {
	if len(txns) == 0 {
		return nil
	}
	batch := txns[0].BatchID
	for _, t := range txns {
		if t.BatchID != batch {
			return fmt.Errorf("mixed batch IDs %q and %q", batch, t.BatchID)
		}
	}

	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendDrafts(f, txns); err != nil {
		return fmt.Errorf("appending batch %s: %w", batch, err)
	}
	return nil
}

// All reads every stored draft in insertion order.
func (s *Store) All() ([]model.TransactionDraft, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txns, err := ReadDrafts(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.Path(), err)
	}
	return txns, nil
}

// Batch returns the drafts recorded under batchID.
func (s *Store) Batch(batchID string) ([]model.TransactionDraft, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	var out []model.TransactionDraft
	for _, t := range all {
		if t.BatchID == batchID {
			out = append(out, t)
		}
	}
	return out, nil
}

// DeleteBatch removes every draft of batchID and returns how many were removed.
func (s *Store) DeleteBatch(batchID string) (int, error) {
	all, err := s.All()
	if err != nil {
		return 0, err
	}

	kept := make([]model.TransactionDraft, 0, len(all))
	for _, t := range all {
		if t.BatchID != batchID {
			kept = append(kept, t)
		}
	}
	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, fmt.Errorf("no transactions found for batch ID %s: %w", batchID, ErrBatchNotFound)
	}

	tmp := s.Path() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("creating ledger: %w", err)
	}
	if err := WriteDrafts(f, kept); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("rewriting ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("closing ledger: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return 0, fmt.Errorf("replacing ledger: %w", err)
	}
	return removed, nil
}
