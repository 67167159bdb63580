package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/config"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository"
)

// everyCell lists all cells so the human always finds a free one.
const everyCell = "0 0\n0 1\n0 2\n1 0\n1 1\n1 2\n2 0\n2 1\n2 2\n"

func TestGameManager_LoadTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads the table file", func(t *testing.T) {
		// Given: a saved table
		conf := newTestConfig(t)
		saved := qtable.New(0)
		require.NoError(t, saved.Ensure(entity.StateKey{entity.PlayerA}))
		require.NoError(t, saved.Save(conf.Table.Path))
		manager := NewGameManager(newTestLogger(), newTestRand(), conf, nil, nil, nil)

		// When: loading it
		table, err := manager.LoadTable(ctx)

		// Then: the same entries are present
		require.NoError(t, err)
		assert.Equal(t, saved.Entries(), table.Entries())
	})

	t.Run("Error when the table file is missing", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), newTestRand(), newTestConfig(t), nil, nil, nil)

		_, err := manager.LoadTable(ctx)

		require.ErrorIs(t, err, ErrNoTrainedTable)
	})

	t.Run("Loads from redis when configured", func(t *testing.T) {
		// Given: a redis source without a snapshot
		conf := newTestConfig(t)
		conf.Table.Source = config.SourceRedis
		tables := &mockTableRepo{}
		tables.On("Load", mock.Anything, "test", mock.AnythingOfType("*qtable.Table")).
			Return(repository.ErrTableNotFound).
			Once()
		manager := NewGameManager(newTestLogger(), newTestRand(), conf, tables, nil, nil)

		// When: loading the table
		_, err := manager.LoadTable(ctx)

		// Then: the missing snapshot is reported as untrained
		require.ErrorIs(t, err, ErrNoTrainedTable)
		tables.AssertExpectations(t)
	})
}

func TestGameManager_PlayGame(t *testing.T) {
	// Given: an untrained agent, scripted human input and both repositories
	ctx := context.Background()
	conf := newTestConfig(t)
	scores := &mockScoreRepo{}
	games := &mockGameRepo{}
	manager := NewGameManager(newTestLogger(), newTestRand(), conf, nil, scores, games)

	scores.On("Record", mock.Anything, "test", mock.AnythingOfType("entity.Outcome"), entity.PlayerB).
		Return(&repository.Score{Wins: 1}, nil).
		Once()
	games.On("SaveGame", mock.Anything, mock.MatchedBy(func(game *repository.GameRecord) bool {
		return game.HumanMark == entity.PlayerA && game.Outcome.IsFinished()
	})).Return(nil).Once()

	var out bytes.Buffer

	// When: playing a game
	game, err := manager.PlayGame(ctx, qtable.New(0), strings.NewReader(everyCell), &out)

	// Then: the game finishes and is recorded
	require.NoError(t, err)
	assert.True(t, game.Outcome.IsFinished())
	assert.NotEmpty(t, game.ID)
	assert.Contains(t, out.String(), "You play O")
	assert.Contains(t, out.String(), "Agent score: 1 wins")

	scores.AssertExpectations(t)
	games.AssertExpectations(t)
}
