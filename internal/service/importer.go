package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/model"
	"github.com/ledgersplit/ledgersplit/internal/money"
)

// statementDateLayout is the date format banks use in exports (YYYYMMDD).
const statementDateLayout = "20060102"

// ErrMissingAccountNumber is returned for statements without an account
// number; the importer cannot resolve an account for them.
var ErrMissingAccountNumber = errors.New("statement has no account number")

// ParseStatementDate parses a YYYYMMDD date string from a bank export.
func ParseStatementDate(text string) (time.Time, error) {
	date, err := time.Parse(statementDateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrMalformedDate, text)
	}
	return date, nil
}

// Importer converts normalized bank statements into canonical transaction
// records: it resolves the account, records the import attempt, and
// persists the deduplicated transaction batch.
type Importer struct {
	storage Storage
}

// NewImporter creates a new statement importer.
func NewImporter(storage Storage) *Importer {
	return &Importer{storage: storage}
}

// Import ingests one bank statement. Every line is parsed before anything
// is persisted, so a malformed amount or date fails the whole call and no
// partial import is committed. Lines whose bank id is already known for
// the account are skipped; re-importing the same statement yields zero new
// transactions. An import record is created on every call, duplicates
// included.
func (i *Importer) Import(ctx context.Context, stmt model.BankStatement) error {
	if stmt.AccountNumber == "" {
		return ErrMissingAccountNumber
	}

	startDate, err := ParseStatementDate(stmt.StartDate)
	if err != nil {
		return fmt.Errorf("statement start date: %w", err)
	}
	endDate, err := ParseStatementDate(stmt.EndDate)
	if err != nil {
		return fmt.Errorf("statement end date: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(stmt.Transactions))
	for idx, line := range stmt.Transactions {
		amount, err := money.ParseCents(line.Amount)
		if err != nil {
			return fmt.Errorf("line %d: %w", idx, err)
		}
		date, err := ParseStatementDate(line.Date)
		if err != nil {
			return fmt.Errorf("line %d: %w", idx, err)
		}

		transactions = append(transactions, model.Transaction{
			BankID:  line.BankID,
			Date:    date,
			Amount:  amount,
			Details: line.Name + " " + line.Memo,
		})
	}

	accountID, err := i.storage.FindOrCreateAccount(ctx, stmt.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to resolve account %s: %w", stmt.AccountNumber, err)
	}

	importID, err := i.storage.CreateImportRecord(ctx, &model.ImportRecord{
		AccountID: accountID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create import record: %w", err)
	}

	for idx := range transactions {
		transactions[idx].AccountID = accountID
		transactions[idx].ImportID = importID
	}

	inserted := 0
	if len(transactions) > 0 {
		// Deduplication makes the batch safe to retry on transient
		// store errors.
		err = common.WithRetry(ctx, func() error {
			n, saveErr := i.storage.SaveTransactions(ctx, transactions)
			inserted = n
			return saveErr
		}, common.RetryOptions{MaxAttempts: 3})
		if err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
	}

	attrs := []any{
		"account", stmt.AccountNumber,
		"import_id", importID,
		"parsed", len(transactions),
		"persisted", inserted,
	}
	if caller, ok := CallerFromContext(ctx); ok {
		attrs = append(attrs, "caller", caller)
	}
	slog.Info("Imported statement", attrs...)

	return nil
}
