package model

import "time"

// Transaction is a canonical bank transaction. Amount is signed integer
// cents. BankID is the bank-assigned external identifier and is unique per
// account; it is the deduplication key for imports.
type Transaction struct {
	Date       time.Time
	BankID     string
	Details    string
	ID         int64
	AccountID  int64
	ImportID   int64
	Amount     int64
	CategoryID *int64
}
