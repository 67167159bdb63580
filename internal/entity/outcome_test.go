package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJudge(t *testing.T) {
	t.Run("Top row of PlayerA wins regardless of empty cells", func(t *testing.T) {
		// Given: PlayerA holds the whole top row
		board := Board{
			{PlayerA, PlayerA, PlayerA},
			{Empty, Empty, Empty},
			{Empty, Empty, Empty},
		}

		// When: judging the board
		outcome := Judge(board)

		// Then: PlayerA has won
		assert.Equal(t, Outcome{Status: StatusWon, Winner: PlayerA}, outcome)
	})

	t.Run("Column win for PlayerB", func(t *testing.T) {
		// Given: PlayerB holds the middle column
		board := Board{
			{PlayerA, PlayerB, Empty},
			{PlayerA, PlayerB, Empty},
			{Empty, PlayerB, PlayerA},
		}

		// Then: PlayerB has won
		assert.Equal(t, Outcome{Status: StatusWon, Winner: PlayerB}, Judge(board))
	})

	t.Run("Anti-diagonal win", func(t *testing.T) {
		// Given: PlayerB holds the top-right to bottom-left diagonal
		board := Board{
			{PlayerA, PlayerA, PlayerB},
			{Empty, PlayerB, Empty},
			{PlayerB, Empty, PlayerA},
		}

		// Then: PlayerB has won
		assert.Equal(t, Outcome{Status: StatusWon, Winner: PlayerB}, Judge(board))
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no three in a line
		board := Board{
			{PlayerA, PlayerB, PlayerA},
			{PlayerB, PlayerA, PlayerB},
			{PlayerB, PlayerA, PlayerB},
		}

		// When: judging the board
		outcome := Judge(board)

		// Then: the game is drawn
		assert.Equal(t, Outcome{Status: StatusDrawn}, outcome)
	})

	t.Run("Full board with a winning line is a win, not a draw", func(t *testing.T) {
		// Given: a full board where PlayerA completes the top row
		board := Board{
			{PlayerA, PlayerA, PlayerA},
			{PlayerB, PlayerB, PlayerA},
			{PlayerA, PlayerB, PlayerB},
		}

		// When: judging the board
		outcome := Judge(board)

		// Then: the win is reported
		assert.Equal(t, Outcome{Status: StatusWon, Winner: PlayerA}, outcome)
	})

	t.Run("Ongoing game continues", func(t *testing.T) {
		// Given: a game without a winner and with empty cells
		board := Board{
			{PlayerA, PlayerB, Empty},
			{Empty, PlayerA, Empty},
			{Empty, Empty, PlayerB},
		}

		// Then: the game continues
		outcome := Judge(board)
		assert.Equal(t, StatusContinuing, outcome.Status)
		assert.False(t, outcome.IsFinished())
	})
}

func TestOutcome_RewardFor(t *testing.T) {
	won := Outcome{Status: StatusWon, Winner: PlayerB}
	drawn := Outcome{Status: StatusDrawn}

	assert.InDelta(t, RewardWin, won.RewardFor(PlayerB), 1e-9)
	assert.InDelta(t, RewardLoss, won.RewardFor(PlayerA), 1e-9)
	assert.InDelta(t, RewardDraw, drawn.RewardFor(PlayerA), 1e-9)
	assert.InDelta(t, RewardDraw, drawn.RewardFor(PlayerB), 1e-9)
	assert.Equal(t, "won by X", won.String())
}
