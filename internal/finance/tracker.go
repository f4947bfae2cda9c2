package finance

import (
	"fmt"
)

// FinanceTracker binds the search and round-up operations to a transaction
// source for the HTTP layer.
type FinanceTracker struct {
	storage     Storage
	StorageType string
}

func NewFinanceTracker(s Storage) FinanceTracker {
	return FinanceTracker{
		storage:     s,
		StorageType: s.GetStorageType(),
	}
}

func (ft *FinanceTracker) SimpleSearch(query string) (string, error) {
	transactions, err := ft.storage.GetTransactions()
	if err != nil {
		return "", fmt.Errorf("failed to get transactions: %w", err)
	}
	return SimpleSearch(query, transactions)
}

func (ft *FinanceTracker) PhoneSearch() (string, error) {
	transactions, err := ft.storage.GetTransactions()
	if err != nil {
		return "", fmt.Errorf("failed to get transactions: %w", err)
	}
	return PhoneSearch(transactions)
}

func (ft *FinanceTracker) PeopleTransferSearch() (string, error) {
	transactions, err := ft.storage.GetTransactions()
	if err != nil {
		return "", fmt.Errorf("failed to get transactions: %w", err)
	}
	return PeopleTransferSearch(transactions)
}

func (ft *FinanceTracker) InvestmentBank(month string, limit int) (float64, error) {
	transactions, err := ft.storage.GetTransactions()
	if err != nil {
		return 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	return InvestmentBank(month, transactions, limit)
}
