// Package service implements the application services: statement import,
// transaction queries, and split allocation. It defines the persistence
// contract those services depend on; storage backends implement it.
package service

import (
	"context"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Account operations
	FindOrCreateAccount(ctx context.Context, number string) (int64, error)
	GetAccountByNumber(ctx context.Context, number string) (*model.Account, error)

	// Import record operations
	CreateImportRecord(ctx context.Context, record *model.ImportRecord) (int64, error)
	GetImportRecord(ctx context.Context, id int64) (*model.ImportRecord, error)

	// Transaction operations. SaveTransactions deduplicates on
	// (account, bank id) atomically and reports how many rows were
	// actually inserted.
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, page, pageSize int) (model.Paged[model.Transaction], error)
	ListTransactionsByDate(ctx context.Context, start, end time.Time, page, pageSize int) (model.Paged[model.Transaction], error)
	UpdateTransactionCategory(ctx context.Context, transactionID int64, categoryID *int64) error

	// Split operations. ReplaceSplits deletes any existing set and inserts
	// the new one as a single atomic unit.
	GetSplits(ctx context.Context, transactionID int64) ([]model.Split, error)
	ReplaceSplits(ctx context.Context, transactionID int64, lines []model.SplitLine) error
	DeleteSplits(ctx context.Context, transactionID int64) error
	GetSplitTotalsByUser(ctx context.Context, start, end time.Time) ([]model.UserSplitTotal, error)

	// User operations
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
