package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

// Game is the context of a single episode: the board, whose turn it is, and
// the judged outcome after the last move.
type Game struct {
	Board   entity.Board
	Turn    entity.Mark
	Starter entity.Mark
	Outcome entity.Outcome
	Moves   int
}

func NewGame(starter entity.Mark) *Game {
	return &Game{
		Turn:    starter,
		Starter: starter,
	}
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsFinished()
}

// MakeTurn places player's mark on cell, judges the board and passes the turn
// if the game goes on.
func (that *Game) MakeTurn(player entity.Mark, cell entity.Coord) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.validateMove(player); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board, err := that.Board.Apply(cell, player)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board = board
	that.Moves++
	that.updateGameStatus()

	return nil
}

// validateMove - checks that it is player's turn.
func (that *Game) validateMove(player entity.Mark) error {
	if player != entity.PlayerA && player != entity.PlayerB {
		return fmt.Errorf("%w: mark %d", apperror.ErrNotYourTurn, player)
	}

	if that.Turn != player {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// updateGameStatus - judges the board after a move.
func (that *Game) updateGameStatus() {
	that.Outcome = entity.Judge(that.Board)
	if !that.Outcome.IsFinished() {
		that.Turn = that.Turn.Opponent()
	}
}
