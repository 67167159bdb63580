package tictactoe

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

// Bot plays a uniformly random legal move.
type Bot struct {
	rng *rand.Rand
}

func NewBot(rng *rand.Rand) *Bot {
	return &Bot{rng: rng}
}

func (that *Bot) SelectMove(_ entity.Board, moves []entity.Coord, _ entity.Mark) (entity.Coord, error) {
	if len(moves) == 0 {
		return entity.Coord{}, apperror.ErrNoLegalMoves
	}

	return moves[that.rng.IntN(len(moves))], nil
}
