package agent

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

// noValue is the floor exploitation starts from. If no candidate beats it the
// first legal move is played.
const noValue float32 = -999

type valueReader interface {
	Get(key entity.StateKey) float32
}

// Policy is an epsilon-greedy move chooser over afterstate values.
type Policy struct {
	Epsilon float64
	Values  valueReader
}

// Choose picks a move for sign. With probability Epsilon it explores
// uniformly, otherwise it plays the move whose resulting state has the highest
// value, preferring the earliest move on ties.
func (that Policy) Choose(rng *rand.Rand, board entity.Board, moves []entity.Coord, sign entity.Mark) (entity.Coord, error) {
	if len(moves) == 0 {
		return entity.Coord{}, apperror.ErrNoLegalMoves
	}

	if rng.Float64() < that.Epsilon {
		return moves[rng.IntN(len(moves))], nil
	}

	return that.Greedy(board, moves, sign)
}

// Greedy is the exploitation half of Choose.
func (that Policy) Greedy(board entity.Board, moves []entity.Coord, sign entity.Mark) (entity.Coord, error) {
	if len(moves) == 0 {
		return entity.Coord{}, apperror.ErrNoLegalMoves
	}

	best := moves[0]
	bestValue := noValue

	for _, move := range moves {
		next, err := board.Apply(move, sign)
		if err != nil {
			return entity.Coord{}, err
		}

		if value := that.Values.Get(next.StateKey()); value > bestValue {
			best, bestValue = move, value
		}
	}

	return best, nil
}
