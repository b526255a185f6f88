// Package accounts is the registry of bank accounts that statements import into.
package accounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// ErrNotFound is returned by Require for unknown or inactive accounts.
var ErrNotFound = errors.New("account not found")

// Service provides in-memory lookup over the account registry.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Path returns the accounts.csv location for a workspace root.
func Path(root string) string {
	return filepath.Join(root, "accounts", "accounts.csv")
}

// Load reads accounts.csv from a workspace root and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		return nil, fmt.Errorf("opening accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Require returns the account if it exists and is active.
func (s *Service) Require(id string) (model.Account, error) {
	a, ok := s.Get(id)
	if !ok || !a.Active {
		return model.Account{}, fmt.Errorf("account %s not found: %w", id, ErrNotFound)
	}
	return a, nil
}

// Add appends a new account. IDs must be unique.
func (s *Service) Add(a model.Account) error {
	if a.ID == "" {
		return fmt.Errorf("account ID is empty")
	}
	if s.Exists(a.ID) {
		return fmt.Errorf("account %s already exists", a.ID)
	}
	s.accounts = append(s.accounts, a)
	s.byID[a.ID] = a
	return nil
}

// Active returns the active accounts.
func (s *Service) Active() []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Active {
			result = append(result, a)
		}
	}
	return result
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the registry to accounts/accounts.csv.
func (s *Service) Save(root string) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}
