package tictactoe

import (
	"math/rand/v2"
	"testing"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBot_SelectMove(t *testing.T) {
	t.Run("Returns a legal move", func(t *testing.T) {
		// Given: a bot and a board with two free cells
		bot := NewBot(rand.New(rand.NewPCG(1, 2)))
		board := entity.Board{
			{entity.PlayerA, entity.PlayerB, entity.PlayerA},
			{entity.PlayerB, entity.Empty, entity.PlayerA},
			{entity.PlayerB, entity.PlayerA, entity.Empty},
		}
		moves := board.LegalMoves()

		// When: asking for moves repeatedly
		for range 20 {
			move, err := bot.SelectMove(board, moves, entity.PlayerB)

			// Then: each one is legal
			require.NoError(t, err)
			assert.Contains(t, moves, move)
		}
	})

	t.Run("Error without legal moves", func(t *testing.T) {
		bot := NewBot(rand.New(rand.NewPCG(1, 2)))

		_, err := bot.SelectMove(entity.Board{}, nil, entity.PlayerA)

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	})
}
