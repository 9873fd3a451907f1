package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/service"
	"github.com/ledgersplit/ledgersplit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionQueries_List(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)
	require.NoError(t, importer.Import(ctx, marchStatement()))

	queries := service.NewTransactionQueries(store)

	// Unspecified page size falls back to the default
	page, err := queries.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, service.DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, 1, page.TotalPages)
}

func TestTransactionQueries_ListByDate(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	importer := service.NewImporter(store)
	require.NoError(t, importer.Import(ctx, marchStatement()))

	queries := service.NewTransactionQueries(store)

	start, err := service.ParseStatementDate("20220312")
	require.NoError(t, err)
	end, err := service.ParseStatementDate("20220320")
	require.NoError(t, err)

	page, err := queries.ListByDate(ctx, start, end, 0, 0)
	require.NoError(t, err)
	// Both boundary dates are included
	require.Len(t, page.Items, 2)
	assert.Equal(t, "202203200", page.Items[0].BankID)
	assert.Equal(t, "202203120", page.Items[1].BankID)
}

func TestTransactionQueries_Get(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()
	queries := service.NewTransactionQueries(store)

	_, err := queries.Get(ctx, 42)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCallerIdentity(t *testing.T) {
	ctx := context.Background()

	_, ok := service.CallerFromContext(ctx)
	assert.False(t, ok)

	ctx = service.WithCaller(ctx, "alice@example.com")
	caller, ok := service.CallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", caller)
}
