package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/model"
)

// SplitAllocator partitions a transaction's amount across users. Each
// transaction is either unsplit or carries a complete set of splits whose
// amounts sum exactly to the transaction amount; submissions replace the
// whole set, never merge into it.
type SplitAllocator struct {
	storage Storage
}

// NewSplitAllocator creates a new split allocator.
func NewSplitAllocator(storage Storage) *SplitAllocator {
	return &SplitAllocator{storage: storage}
}

// SetSplits validates and stores a split set for a transaction. The
// proposed lines are checked against the transaction amount before any
// persisted state is touched: an imbalanced submission returns
// ErrSplitImbalance and leaves an existing split set intact. A balanced
// submission replaces any prior set atomically. Exact balance is required
// here; remainder correction belongs upstream in money.Allocator.
func (a *SplitAllocator) SetSplits(ctx context.Context, transactionID int64, lines []model.SplitLine) error {
	txn, err := a.storage.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	var sum int64
	for _, line := range lines {
		sum += line.Amount
	}
	if sum != txn.Amount {
		return fmt.Errorf("%w: splits sum to %d, transaction amount is %d",
			common.ErrSplitImbalance, sum, txn.Amount)
	}

	if err := a.storage.ReplaceSplits(ctx, transactionID, lines); err != nil {
		return err
	}

	slog.Info("Replaced splits",
		"transaction_id", transactionID,
		"lines", len(lines),
		"amount", txn.Amount)

	return nil
}

// GetSplits returns the current splits for a transaction; an unsplit
// transaction yields an empty list.
func (a *SplitAllocator) GetSplits(ctx context.Context, transactionID int64) ([]model.Split, error) {
	return a.storage.GetSplits(ctx, transactionID)
}

// DeleteSplits removes all splits for a transaction, returning it to the
// unsplit state. Idempotent.
func (a *SplitAllocator) DeleteSplits(ctx context.Context, transactionID int64) error {
	return a.storage.DeleteSplits(ctx, transactionID)
}

// TotalsByUser sums accepted split amounts per user for transactions dated
// within [start, end].
func (a *SplitAllocator) TotalsByUser(ctx context.Context, start, end time.Time) ([]model.UserSplitTotal, error) {
	return a.storage.GetSplitTotalsByUser(ctx, start, end)
}
