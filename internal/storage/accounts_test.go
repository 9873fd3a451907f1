package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateAccount(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	id1, err := store.FindOrCreateAccount(ctx, "12345678")
	require.NoError(t, err)
	assert.Positive(t, id1)

	// Same number resolves to the same account
	id2, err := store.FindOrCreateAccount(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// A different number gets its own account
	id3, err := store.FindOrCreateAccount(ctx, "87654321")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)

	account, err := store.GetAccountByNumber(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, id1, account.ID)
	assert.Equal(t, "12345678", account.Number)
	assert.Empty(t, account.Name)
}

func TestFindOrCreateAccount_EmptyNumber(t *testing.T) {
	store := testutil.SetupTestDB(t)

	_, err := store.FindOrCreateAccount(context.Background(), "  ")
	require.Error(t, err)
}

func TestGetAccountByNumber_NotFound(t *testing.T) {
	store := testutil.SetupTestDB(t)

	_, err := store.GetAccountByNumber(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
