package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/model"
	"github.com/ledgersplit/ledgersplit/internal/service"
	"github.com/ledgersplit/ledgersplit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// marchStatement is a 4-line statement summing to -4796.67.
func marchStatement() model.BankStatement {
	return model.BankStatement{
		AccountNumber: "12345678",
		StartDate:     "20220301",
		EndDate:       "20220331",
		Transactions: []model.StatementLine{
			{Type: "DEBIT", Date: "20220305", Amount: "-1200.00", BankID: "202203050", Name: "Rent", Memo: "March"},
			{Type: "DEBIT", Date: "20220312", Amount: "-3500.17", BankID: "202203120", Name: "Car Repair", Memo: ""},
			{Type: "CREDIT", Date: "20220320", Amount: "-84.00", BankID: "202203200", Name: "Groceries", Memo: "Weekly shop"},
			{Type: "FEE", Date: "20220331", Amount: "-12.50", BankID: "202203310", Name: "Monthly A C Fee", Memo: "Bank Fee"},
		},
	}
}

func sumAmounts(items []model.Transaction) int64 {
	var sum int64
	for _, txn := range items {
		sum += txn.Amount
	}
	return sum
}

func TestImporter_Import(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)

	require.NoError(t, importer.Import(ctx, marchStatement()))

	page, err := store.ListTransactions(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.Equal(t, int64(-479667), sumAmounts(page.Items))

	// Details concatenate name and memo
	assert.Equal(t, "Monthly A C Fee Bank Fee", page.Items[0].Details)
	// Empty memo still leaves the separator, matching the bank feed shape
	assert.Equal(t, "Car Repair ", page.Items[2].Details)

	// All transactions carry the same account and import tags
	for _, txn := range page.Items {
		assert.Equal(t, page.Items[0].AccountID, txn.AccountID)
		assert.Equal(t, page.Items[0].ImportID, txn.ImportID)
	}
}

func TestImporter_ImportIsIdempotent(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)

	require.NoError(t, importer.Import(ctx, marchStatement()))
	require.NoError(t, importer.Import(ctx, marchStatement()))

	page, err := store.ListTransactions(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, int64(-479667), sumAmounts(page.Items))
}

func TestImporter_EveryAttemptGetsAnImportRecord(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)

	require.NoError(t, importer.Import(ctx, marchStatement()))
	require.NoError(t, importer.Import(ctx, marchStatement()))

	// Import records are never deduplicated, only transactions are
	first, err := store.GetImportRecord(ctx, 1)
	require.NoError(t, err)
	second, err := store.GetImportRecord(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, first.AccountID, second.AccountID)
	assert.Equal(t, time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), first.StartDate)
	assert.Equal(t, time.Date(2022, 3, 31, 0, 0, 0, 0, time.UTC), first.EndDate)

	// But the transactions all hang off the first import
	page, err := store.ListTransactions(ctx, 0, 10)
	require.NoError(t, err)
	for _, txn := range page.Items {
		assert.Equal(t, first.ID, txn.ImportID)
	}
}

func TestImporter_MalformedAmountFailsWholeBatch(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)

	stmt := marchStatement()
	stmt.Transactions[2].Amount = "not-a-number"

	err := importer.Import(ctx, stmt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedAmount))

	// No partial import: even the well-formed lines were not committed
	page, err := store.ListTransactions(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestImporter_MalformedDateFailsWholeBatch(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)

	stmt := marchStatement()
	stmt.Transactions[0].Date = "2022-03-05"

	err := importer.Import(ctx, stmt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedDate))

	page, err := store.ListTransactions(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestImporter_MalformedStatementDates(t *testing.T) {
	store := testutil.SetupTestDB(t)
	importer := service.NewImporter(store)

	stmt := marchStatement()
	stmt.StartDate = "yesterday"

	err := importer.Import(context.Background(), stmt)
	assert.True(t, errors.Is(err, common.ErrMalformedDate))
}

func TestImporter_MissingAccountNumber(t *testing.T) {
	store := testutil.SetupTestDB(t)
	importer := service.NewImporter(store)

	stmt := marchStatement()
	stmt.AccountNumber = ""

	err := importer.Import(context.Background(), stmt)
	assert.True(t, errors.Is(err, service.ErrMissingAccountNumber))
}

func TestImporter_EmptyStatement(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)

	stmt := model.BankStatement{
		AccountNumber: "12345678",
		StartDate:     "20220301",
		EndDate:       "20220331",
	}

	// An empty statement still records the import attempt
	require.NoError(t, importer.Import(ctx, stmt))

	_, err := store.GetImportRecord(ctx, 1)
	require.NoError(t, err)
}

func TestParseStatementDate(t *testing.T) {
	date, err := service.ParseStatementDate("20220331")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 3, 31, 0, 0, 0, 0, time.UTC), date)

	_, err = service.ParseStatementDate("31/03/2022")
	assert.True(t, errors.Is(err, common.ErrMalformedDate))
}
