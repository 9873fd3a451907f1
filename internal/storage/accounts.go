package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/model"
)

// FindOrCreateAccount resolves an external account number to an internal
// account id, creating the account on first sight. The insert tolerates a
// concurrent creation of the same number: the UNIQUE constraint guarantees
// at most one row, and the follow-up read returns whichever insert won.
func (s *SQLiteStorage) FindOrCreateAccount(ctx context.Context, number string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(number, "number"); err != nil {
		return 0, err
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (number) VALUES (?)
			ON CONFLICT(number) DO NOTHING
		`, number)
		if err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}

		err = tx.QueryRowContext(ctx, `
			SELECT id FROM accounts WHERE number = ?
		`, number).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to look up account: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetAccountByNumber retrieves an account by its external number.
func (s *SQLiteStorage) GetAccountByNumber(ctx context.Context, number string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(number, "number"); err != nil {
		return nil, err
	}

	var account model.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, number, name FROM accounts WHERE number = ?
	`, number).Scan(&account.ID, &account.Number, &account.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}
