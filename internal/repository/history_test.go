package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_Games(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	historyRepo := NewHistoryRepository(st.SQLite.Connection)

	// Given: two finished games played a minute apart
	now := time.Now().UTC().Truncate(time.Second)
	older := &GameRecord{
		ID:        "g-1",
		HumanMark: entity.PlayerA,
		Starter:   entity.PlayerA,
		Outcome:   entity.Outcome{Status: entity.StatusDrawn},
		Board: entity.Board{
			{entity.PlayerA, entity.PlayerB, entity.PlayerA},
			{entity.PlayerB, entity.PlayerA, entity.PlayerB},
			{entity.PlayerB, entity.PlayerA, entity.PlayerB},
		},
		Moves:    9,
		PlayedAt: now.Add(-time.Minute),
	}
	newer := &GameRecord{
		ID:        "g-2",
		HumanMark: entity.PlayerA,
		Starter:   entity.PlayerB,
		Outcome:   entity.Outcome{Status: entity.StatusWon, Winner: entity.PlayerB},
		Board: entity.Board{
			{entity.PlayerB, entity.PlayerB, entity.PlayerB},
			{entity.PlayerA, entity.PlayerA, entity.Empty},
			{},
		},
		Moves:    5,
		PlayedAt: now,
	}

	// When: both are saved and listed
	require.NoError(t, historyRepo.SaveGame(ctx, older))
	require.NoError(t, historyRepo.SaveGame(ctx, newer))
	games, err := historyRepo.ListGames(ctx, 10)

	// Then: they come back newest first with their boards intact
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g-2", games[0].ID)
	assert.Equal(t, newer.Board, games[0].Board)
	assert.Equal(t, newer.Outcome, games[0].Outcome)
	assert.Equal(t, older.Board, games[1].Board)
	assert.True(t, older.PlayedAt.Equal(games[1].PlayedAt))
}

func TestHistoryRepository_Runs(t *testing.T) {
	t.Run("SaveRun_FindRun_Success", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		historyRepo := NewHistoryRepository(st.SQLite.Connection)

		// Given: a finished training run
		run := &RunRecord{
			ID:         "run-1",
			Episodes:   500,
			WinsA:      200,
			WinsB:      180,
			Draws:      120,
			States:     3412,
			TablePath:  "q_table.bin",
			FinishedAt: time.Now().UTC().Truncate(time.Second),
		}

		// When: it is saved and looked up
		require.NoError(t, historyRepo.SaveRun(ctx, run))
		found, err := historyRepo.FindRun(ctx, run.ID)

		// Then: the same summary is returned
		require.NoError(t, err)
		assert.Equal(t, run.Episodes, found.Episodes)
		assert.Equal(t, run.States, found.States)
		assert.True(t, run.FinishedAt.Equal(found.FinishedAt))
	})

	t.Run("FindRun_NotFound", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		historyRepo := NewHistoryRepository(st.SQLite.Connection)

		// When: FindRun is called with an unknown id
		found, err := historyRepo.FindRun(ctx, "missing")

		// Then: an ErrRunNotFound error should be returned
		require.ErrorIs(t, err, ErrRunNotFound)
		assert.Nil(t, found)
	})
}

func TestParseBoard(t *testing.T) {
	_, err := parseBoard("OX")
	require.Error(t, err)

	_, err = parseBoard("OXO/XOX/XOZ")
	require.Error(t, err)

	board, err := parseBoard("O--/-X-/--O")
	require.NoError(t, err)
	assert.Equal(t, entity.PlayerB, board[1][1])
}
