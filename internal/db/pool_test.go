//go:build integration

package db_test

import (
	"testing"

	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/babylonlabs-io/vesting-engine/testutil"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("get missing", func(t *testing.T) {
		pool, err := testDB.GetPoolByID(ctx, derive.PoolID("missing"))
		require.Error(t, err)
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, pool)
	})
	t.Run("save", func(t *testing.T) {
		err := testDB.SaveNewPool(ctx, nil)
		require.Error(t, err)

		pool := createPool(t)
		err = testDB.SaveNewPool(ctx, pool)
		require.NoError(t, err)

		found, err := testDB.GetPoolByID(ctx, pool.ID)
		require.NoError(t, err)
		assert.Equal(t, pool, found)

		// same name means same id
		duplicate := createPool(t)
		duplicate.ID = pool.ID
		err = testDB.SaveNewPool(ctx, duplicate)
		require.Error(t, err)
		assert.True(t, db.IsDuplicateKeyError(err))

		// the original stays untouched
		found, err = testDB.GetPoolByID(ctx, pool.ID)
		require.NoError(t, err)
		assert.Equal(t, pool.Owner, found.Owner)
	})
	t.Run("get all", func(t *testing.T) {
		resetDatabase(t)

		pool1 := createPool(t)
		pool2 := createPool(t)
		require.NoError(t, testDB.SaveNewPool(ctx, pool1))
		require.NoError(t, testDB.SaveNewPool(ctx, pool2))

		pools, err := testDB.GetAllPools(ctx)
		require.NoError(t, err)
		assert.Len(t, pools, 2)
		assert.Contains(t, pools, pool1)
		assert.Contains(t, pools, pool2)
	})
}

func createPool(t *testing.T) *model.PoolDocument {
	name := testutil.RandomPoolName()
	require.NoError(t, derive.ValidatePoolName(name))

	poolAddr := derive.PoolAddress(name)
	treasury := derive.TreasuryAddress(name)
	return &model.PoolDocument{
		ID:           poolAddr.ID,
		Owner:        gofakeit.UUID(),
		Asset:        gofakeit.CurrencyShort(),
		Decimals:     9,
		Treasury:     treasury.ID,
		Name:         name,
		TreasuryBump: treasury.Bump,
		Bump:         poolAddr.Bump,
		CreatedAt:    gofakeit.Int64(),
	}
}
