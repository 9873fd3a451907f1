// Package model defines the core domain types for the application.
package model

// Account represents a bank account keyed by its external account number.
// Accounts are created implicitly the first time an import references an
// unseen account number; the display name is filled in later by other flows.
type Account struct {
	Number string
	Name   string
	ID     int64
}
