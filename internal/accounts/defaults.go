package accounts

import "github.com/cleared-dev/budgetcsv/internal/model"

// Defaults returns the accounts written by `budgetcsv init`.
func Defaults() []model.Account {
	return []model.Account{
		{ID: "chequing", Name: "Chequing", Type: model.AccountTypeChecking, Active: true},
		{ID: "savings", Name: "Savings", Type: model.AccountTypeSavings, Active: true},
		{ID: "credit-card", Name: "Credit Card", Type: model.AccountTypeCreditCard, Active: true},
	}
}
