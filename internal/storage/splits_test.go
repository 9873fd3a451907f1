package storage_test

import (
	"context"
	"testing"

	"github.com/ledgersplit/ledgersplit/internal/model"
	"github.com/ledgersplit/ledgersplit/internal/storage"
	"github.com/ledgersplit/ledgersplit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTransaction inserts one transaction and returns its id.
func seedTransaction(t *testing.T, store *storage.SQLiteStorage, amount int64) int64 {
	t.Helper()
	ctx := context.Background()

	accountID, importID := seedImport(t, store, "12345678")
	_, err := store.SaveTransactions(ctx, []model.Transaction{
		{AccountID: accountID, ImportID: importID, BankID: "seed", Date: day(15), Amount: amount},
	})
	require.NoError(t, err)

	page, err := store.ListTransactions(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	return page.Items[0].ID
}

func TestReplaceSplits(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	users := testutil.SeedUsers(t, store, "alice@example.com", "bob@example.com", "carol@example.com")
	txnID := seedTransaction(t, store, 1000)

	require.NoError(t, store.ReplaceSplits(ctx, txnID, []model.SplitLine{
		{UserID: users[0], Amount: 300},
		{UserID: users[1], Amount: 700, Reviewed: true},
	}))

	splits, err := store.GetSplits(ctx, txnID)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, users[0], splits[0].UserID)
	assert.Equal(t, int64(300), splits[0].Amount)
	assert.False(t, splits[0].Reviewed)
	assert.True(t, splits[1].Reviewed)

	// A new submission replaces the whole set, never merges
	require.NoError(t, store.ReplaceSplits(ctx, txnID, []model.SplitLine{
		{UserID: users[1], Amount: 100},
		{UserID: users[2], Amount: 900},
	}))

	splits, err = store.GetSplits(ctx, txnID)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, users[1], splits[0].UserID)
	assert.Equal(t, int64(100), splits[0].Amount)
	assert.Equal(t, users[2], splits[1].UserID)
	assert.Equal(t, int64(900), splits[1].Amount)
}

func TestDeleteSplits_Idempotent(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	users := testutil.SeedUsers(t, store, "alice@example.com")
	txnID := seedTransaction(t, store, 500)

	// Deleting with no splits is a no-op
	require.NoError(t, store.DeleteSplits(ctx, txnID))

	require.NoError(t, store.ReplaceSplits(ctx, txnID, []model.SplitLine{
		{UserID: users[0], Amount: 500},
	}))

	require.NoError(t, store.DeleteSplits(ctx, txnID))
	splits, err := store.GetSplits(ctx, txnID)
	require.NoError(t, err)
	assert.Empty(t, splits)

	// And again
	require.NoError(t, store.DeleteSplits(ctx, txnID))
}

func TestGetSplits_UnsplitTransaction(t *testing.T) {
	store := testutil.SetupTestDB(t)
	txnID := seedTransaction(t, store, 500)

	splits, err := store.GetSplits(context.Background(), txnID)
	require.NoError(t, err)
	assert.NotNil(t, splits)
	assert.Empty(t, splits)
}

func TestGetSplitTotalsByUser(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	users := testutil.SeedUsers(t, store, "alice@example.com", "bob@example.com")

	accountID, importID := seedImport(t, store, "12345678")
	_, err := store.SaveTransactions(ctx, []model.Transaction{
		{AccountID: accountID, ImportID: importID, BankID: "b1", Date: day(5), Amount: 1000},
		{AccountID: accountID, ImportID: importID, BankID: "b2", Date: day(10), Amount: -400},
		{AccountID: accountID, ImportID: importID, BankID: "b3", Date: day(25), Amount: 9999},
	})
	require.NoError(t, err)

	page, err := store.ListTransactionsByDate(ctx, day(1), day(31), 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	byBankID := map[string]int64{}
	for _, txn := range page.Items {
		byBankID[txn.BankID] = txn.ID
	}

	require.NoError(t, store.ReplaceSplits(ctx, byBankID["b1"], []model.SplitLine{
		{UserID: users[0], Amount: 600},
		{UserID: users[1], Amount: 400},
	}))
	require.NoError(t, store.ReplaceSplits(ctx, byBankID["b2"], []model.SplitLine{
		{UserID: users[0], Amount: -400},
	}))
	require.NoError(t, store.ReplaceSplits(ctx, byBankID["b3"], []model.SplitLine{
		{UserID: users[1], Amount: 9999},
	}))

	// Only transactions dated within the range count
	totals, err := store.GetSplitTotalsByUser(ctx, day(1), day(15))
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, users[0], totals[0].UserID)
	assert.Equal(t, int64(200), totals[0].Total)
	assert.Equal(t, users[1], totals[1].UserID)
	assert.Equal(t, int64(400), totals[1].Total)
}
