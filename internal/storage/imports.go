package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/model"
)

// CreateImportRecord persists one import record and returns its id. Every
// import attempt gets its own record, including resubmissions of an
// identical statement.
func (s *SQLiteStorage) CreateImportRecord(ctx context.Context, record *model.ImportRecord) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if record == nil {
		return 0, fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateID(record.AccountID, "record.AccountID"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO import_records (account_id, start_date, end_date)
		VALUES (?, ?, ?)
	`, record.AccountID, record.StartDate, record.EndDate)
	if err != nil {
		return 0, fmt.Errorf("failed to insert import record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import record id: %w", err)
	}

	return id, nil
}

// GetImportRecord retrieves a single import record by id.
func (s *SQLiteStorage) GetImportRecord(ctx context.Context, id int64) (*model.ImportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	var record model.ImportRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, account_id, start_date, end_date, created_at
		FROM import_records
		WHERE id = ?
	`, id).Scan(&record.ID, &record.AccountID, &record.StartDate, &record.EndDate, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import record: %w", err)
	}

	return &record, nil
}
