package tictactoe

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

// MoveSource chooses a move for sign among the legal moves of board.
type MoveSource interface {
	SelectMove(board entity.Board, moves []entity.Coord, sign entity.Mark) (entity.Coord, error)
}

// Learner is a move source that remembers its own afterstates per mark and
// updates its values once the episode is over. The same learner may hold both
// seats.
type Learner interface {
	MoveSource
	Reset()
	Record(sign entity.Mark, key entity.StateKey) error
	Learn(sign entity.Mark, reward float32) (float32, error)
}

// Observer is notified after every applied move.
type Observer interface {
	OnMove(game *Game, player entity.Mark, move entity.Coord)
}

// Result is what an episode reports to its caller.
type Result struct {
	Outcome entity.Outcome
	Board   entity.Board
	Starter entity.Mark
	Moves   int
	// MaxStep is the largest value change applied by any learner.
	MaxStep float32
}

// Driver alternates two move sources over one board per episode. seatA always
// plays PlayerA and seatB plays PlayerB; the starting side is random.
type Driver struct {
	logger   *slog.Logger
	rng      *rand.Rand
	observer Observer
}

func NewDriver(logger *slog.Logger, rng *rand.Rand) *Driver {
	return &Driver{
		logger: logger.With("component", "driver"),
		rng:    rng,
	}
}

// WithObserver returns a driver that reports every move to observer.
func (that *Driver) WithObserver(observer Observer) *Driver {
	driver := *that
	driver.observer = observer
	return &driver
}

// StartingPlayer picks the side that moves first.
func (that *Driver) StartingPlayer() entity.Mark {
	if that.rng.IntN(2) == 0 {
		return entity.PlayerA
	}
	return entity.PlayerB
}

// Play runs one full episode and, if any seat learns, applies the value update.
func (that *Driver) Play(seatA, seatB MoveSource) (Result, error) {
	seats := map[entity.Mark]MoveSource{
		entity.PlayerA: seatA,
		entity.PlayerB: seatB,
	}

	for _, seat := range seats {
		if learner, ok := seat.(Learner); ok {
			learner.Reset()
		}
	}

	game := NewGame(that.StartingPlayer())

	for !game.IsFinished() {
		player := game.Turn
		seat := seats[player]

		moves := game.Board.LegalMoves()
		move, err := seat.SelectMove(game.Board, moves, player)
		if err != nil {
			return Result{}, fmt.Errorf("failed to select move for %s: %w", player.Symbol(), err)
		}

		if err = game.MakeTurn(player, move); err != nil {
			return Result{}, fmt.Errorf("failed to apply move for %s: %w", player.Symbol(), err)
		}

		if learner, ok := seat.(Learner); ok {
			if err = learner.Record(player, game.Board.StateKey()); err != nil {
				return Result{}, fmt.Errorf("failed to record state for %s: %w", player.Symbol(), err)
			}
		}

		if that.observer != nil {
			that.observer.OnMove(game, player, move)
		}
	}

	result := Result{
		Outcome: game.Outcome,
		Board:   game.Board,
		Starter: game.Starter,
		Moves:   game.Moves,
	}

	for _, player := range []entity.Mark{entity.PlayerA, entity.PlayerB} {
		learner, ok := seats[player].(Learner)
		if !ok {
			continue
		}

		step, err := learner.Learn(player, game.Outcome.RewardFor(player))
		if err != nil {
			return result, fmt.Errorf("failed to update values for %s: %w", player.Symbol(), err)
		}
		result.MaxStep = max(result.MaxStep, step)
	}

	that.logger.Debug("episode finished",
		"outcome", result.Outcome.String(),
		"starter", result.Starter.Symbol(),
		"moves", result.Moves,
	)

	return result, nil
}
