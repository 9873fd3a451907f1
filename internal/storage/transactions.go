package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/model"
)

const transactionColumns = `id, account_id, import_id, bank_id, date, amount, details, category_id`

// SaveTransactions inserts a batch of transactions, skipping any whose
// (account, bank id) pair already exists. The scan-and-insert runs in one
// database transaction so two concurrent imports of the same statement
// cannot both pass the duplicate check. Returns the number of rows
// actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	inserted := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO transactions (
				account_id, import_id, bank_id, date, amount, details, category_id
			) VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(account_id, bank_id) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, txn := range transactions {
			result, err := stmt.ExecContext(ctx,
				txn.AccountID,
				txn.ImportID,
				txn.BankID,
				txn.Date,
				txn.Amount,
				txn.Details,
				txn.CategoryID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", txn.BankID, err)
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read insert result: %w", err)
			}
			inserted += int(rows)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// GetTransactionByID retrieves a single transaction by id.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}

// ListTransactions returns one page of transactions, most recent first.
// Ties on date break by insertion order so paging stays reproducible.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, page, pageSize int) (model.Paged[model.Transaction], error) {
	if err := validateContext(ctx); err != nil {
		return model.Paged[model.Transaction]{}, err
	}
	if err := validatePage(page, pageSize); err != nil {
		return model.Paged[model.Transaction]{}, err
	}

	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total)
	if err != nil {
		return model.Paged[model.Transaction]{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY date DESC, id ASC
		LIMIT ? OFFSET ?
	`, pageSize, page*pageSize)
	if err != nil {
		return model.Paged[model.Transaction]{}, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items, err := scanTransactions(rows)
	if err != nil {
		return model.Paged[model.Transaction]{}, err
	}

	return model.NewPaged(items, page, pageSize, total), nil
}

// ListTransactionsByDate returns one page of transactions dated within
// [start, end], both bounds inclusive, most recent first.
func (s *SQLiteStorage) ListTransactionsByDate(ctx context.Context, start, end time.Time, page, pageSize int) (model.Paged[model.Transaction], error) {
	if err := validateContext(ctx); err != nil {
		return model.Paged[model.Transaction]{}, err
	}
	if err := validatePage(page, pageSize); err != nil {
		return model.Paged[model.Transaction]{}, err
	}
	if end.Before(start) {
		return model.Paged[model.Transaction]{}, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, start, end)
	}

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions WHERE date >= ? AND date <= ?
	`, start, end).Scan(&total)
	if err != nil {
		return model.Paged[model.Transaction]{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC, id ASC
		LIMIT ? OFFSET ?
	`, start, end, pageSize, page*pageSize)
	if err != nil {
		return model.Paged[model.Transaction]{}, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items, err := scanTransactions(rows)
	if err != nil {
		return model.Paged[model.Transaction]{}, err
	}

	return model.NewPaged(items, page, pageSize, total), nil
}

// UpdateTransactionCategory sets or clears the category reference on a
// transaction. The rest of the transaction is immutable after import.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, transactionID int64, categoryID *int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(transactionID, "transactionID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET category_id = ? WHERE id = ?
	`, categoryID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for transaction scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var categoryID sql.NullInt64

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.ImportID,
		&txn.BankID,
		&txn.Date,
		&txn.Amount,
		&txn.Details,
		&categoryID,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		txn.CategoryID = &categoryID.Int64
	}

	return &txn, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}
