package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/model"
)

// GetSplits returns the current split set for a transaction, empty if the
// transaction is unsplit.
func (s *SQLiteStorage) GetSplits(ctx context.Context, transactionID int64) ([]model.Split, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(transactionID, "transactionID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, user_id, amount, reviewed
		FROM splits
		WHERE transaction_id = ?
		ORDER BY id ASC
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	splits := []model.Split{}
	for rows.Next() {
		var split model.Split
		if err := rows.Scan(&split.ID, &split.TransactionID, &split.UserID, &split.Amount, &split.Reviewed); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	return splits, rows.Err()
}

// ReplaceSplits deletes any existing split set for the transaction and
// inserts the new lines as one unit. Delete and insert share a database
// transaction, so concurrent submissions cannot interleave into a mixed
// old/new set; last writer wins.
func (s *SQLiteStorage) ReplaceSplits(ctx context.Context, transactionID int64, lines []model.SplitLine) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(transactionID, "transactionID"); err != nil {
		return err
	}
	if err := validateSplitLines(lines); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM splits WHERE transaction_id = ?
		`, transactionID); err != nil {
			return fmt.Errorf("failed to delete existing splits: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO splits (transaction_id, user_id, amount, reviewed)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, line := range lines {
			if _, err := stmt.ExecContext(ctx, transactionID, line.UserID, line.Amount, line.Reviewed); err != nil {
				return fmt.Errorf("failed to insert split for user %d: %w", line.UserID, err)
			}
		}
		return nil
	})
}

// DeleteSplits removes all splits for a transaction. Deleting an already
// unsplit transaction is a no-op, not an error.
func (s *SQLiteStorage) DeleteSplits(ctx context.Context, transactionID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(transactionID, "transactionID"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM splits WHERE transaction_id = ?
	`, transactionID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	return nil
}

// GetSplitTotalsByUser sums accepted split amounts per user over a date
// range, both bounds inclusive.
func (s *SQLiteStorage) GetSplitTotalsByUser(ctx context.Context, start, end time.Time) ([]model.UserSplitTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, start, end)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sp.user_id, SUM(sp.amount) AS total
		FROM splits sp
		JOIN transactions t ON t.id = sp.transaction_id
		WHERE t.date >= ? AND t.date <= ?
		GROUP BY sp.user_id
		ORDER BY sp.user_id ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query split totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := []model.UserSplitTotal{}
	for rows.Next() {
		var t model.UserSplitTotal
		if err := rows.Scan(&t.UserID, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan split total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
