package storage

import (
	financeModel "github.com/Egor603/curswork1/internal/finance"
)

type InMemoryStorage struct {
	transactions []financeModel.Transaction
}

func NewInMemoryStorage(transactions []financeModel.Transaction) *InMemoryStorage {
	return &InMemoryStorage{transactions: transactions}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) GetTransactions() ([]financeModel.Transaction, error) {
	// Copy, so callers cannot reorder or edit the stored history.
	transactions := make([]financeModel.Transaction, len(inMem.transactions))
	copy(transactions, inMem.transactions)
	return transactions, nil
}
