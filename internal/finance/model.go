package finance

// Transaction is one record of the user's history, loaded by a Storage
// implementation. Records are input only, the service never mutates them.
type Transaction struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Amount      float64 `json:"amount"`
}

// Storage supplies the transaction history. Mirrors the record source
// (database, spreadsheet export) behind one interface so tests can feed
// fixed slices.
type Storage interface {
	GetTransactions() ([]Transaction, error)
	GetStorageType() string
}
