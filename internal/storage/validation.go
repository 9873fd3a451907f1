// Package storage provides the SQLite persistence layer for the
// application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgersplit/ledgersplit/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidID          = errors.New("id must be positive")
	ErrInvalidPage        = errors.New("invalid page parameters")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidSplitLine   = errors.New("invalid split line")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a row id is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validatePage ensures paging parameters are usable.
func validatePage(page, pageSize int) error {
	if page < 0 {
		return fmt.Errorf("%w: page %d", ErrInvalidPage, page)
	}
	if pageSize <= 0 {
		return fmt.Errorf("%w: pageSize %d", ErrInvalidPage, pageSize)
	}
	return nil
}

// validateTransactions validates a slice of transactions for insertion.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction for insertion.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.BankID == "" {
		return fmt.Errorf("%w: missing bank id", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.AccountID <= 0 {
		return fmt.Errorf("%w: missing account id", ErrInvalidTransaction)
	}
	if txn.ImportID <= 0 {
		return fmt.Errorf("%w: missing import id", ErrInvalidTransaction)
	}
	return nil
}

// validateSplitLines validates a proposed split set for insertion.
func validateSplitLines(lines []model.SplitLine) error {
	if lines == nil {
		return fmt.Errorf("%w: lines", ErrNilParameter)
	}
	if len(lines) == 0 {
		return fmt.Errorf("%w: lines", ErrEmptySlice)
	}
	for i, line := range lines {
		if line.UserID <= 0 {
			return fmt.Errorf("%w: line %d missing user id", ErrInvalidSplitLine, i)
		}
	}
	return nil
}
