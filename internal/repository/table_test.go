package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
	"github.com/rocketscienceinc/tictactoe-qlearning/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRepository_SaveLoad(t *testing.T) {
	t.Run("Save_Load_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		tableRepo := NewTableRepository(st.Storage)

		// Given: a table with two valued states
		key := entity.StateKey{entity.PlayerA, entity.PlayerB}
		other := entity.StateKey{entity.Empty, entity.Empty, entity.PlayerA}
		table := qtable.New(10)
		require.NoError(t, table.Ensure(key))
		require.NoError(t, table.Ensure(other))
		_, err := table.Update(key, 0.42)
		require.NoError(t, err)

		// When: Save then Load into a fresh table
		err = tableRepo.Save(ctx, "run-1", table)
		require.NoError(t, err)

		loaded := qtable.New(10)
		err = tableRepo.Load(ctx, "run-1", loaded)

		// Then: the same entries are restored
		require.NoError(t, err)
		assert.Equal(t, table.Entries(), loaded.Entries())
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		tableRepo := NewTableRepository(st.Storage)

		// When: Load is called for an unknown snapshot
		err := tableRepo.Load(ctx, "missing", qtable.New(10))

		// Then: an ErrTableNotFound error should be returned
		require.ErrorIs(t, err, ErrTableNotFound)
	})
}
