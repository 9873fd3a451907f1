package service

import (
	"context"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/model"
)

// DefaultPageSize is used when a caller does not specify one.
const DefaultPageSize = 25

// TransactionQueries is the read side of the transaction store, plus the
// one post-import mutation the boundary allows: updating the category
// reference.
type TransactionQueries struct {
	storage Storage
}

// NewTransactionQueries creates a new query service.
func NewTransactionQueries(storage Storage) *TransactionQueries {
	return &TransactionQueries{storage: storage}
}

// List returns one page of transactions, most recent first.
func (q *TransactionQueries) List(ctx context.Context, page, pageSize int) (model.Paged[model.Transaction], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return q.storage.ListTransactions(ctx, page, pageSize)
}

// ListByDate returns one page of transactions dated within [start, end],
// both bounds inclusive.
func (q *TransactionQueries) ListByDate(ctx context.Context, start, end time.Time, page, pageSize int) (model.Paged[model.Transaction], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return q.storage.ListTransactionsByDate(ctx, start, end, page, pageSize)
}

// Get returns a single transaction or common.ErrNotFound.
func (q *TransactionQueries) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	return q.storage.GetTransactionByID(ctx, id)
}

// UpdateCategory sets or clears the category reference on a transaction.
func (q *TransactionQueries) UpdateCategory(ctx context.Context, transactionID int64, categoryID *int64) error {
	return q.storage.UpdateTransactionCategory(ctx, transactionID, categoryID)
}
