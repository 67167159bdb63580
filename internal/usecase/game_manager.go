package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/agent"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/config"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/console"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/tictactoe"
)

var ErrNoTrainedTable = errors.New("no trained q-table, run training first")

type scoreRepo interface {
	Record(ctx context.Context, name string, outcome entity.Outcome, agentMark entity.Mark) (*repository.Score, error)
}

type gameRepo interface {
	SaveGame(ctx context.Context, game *repository.GameRecord) error
}

// GameManager runs interactive games between a person at the console and the
// trained agent.
type GameManager struct {
	logger *slog.Logger
	rng    *rand.Rand
	conf   *config.Config

	tableRepo tableRepo
	scoreRepo scoreRepo
	gameRepo  gameRepo
}

func NewGameManager(
	logger *slog.Logger,
	rng *rand.Rand,
	conf *config.Config,
	tableRepo tableRepo,
	scoreRepo scoreRepo,
	gameRepo gameRepo,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		rng:    rng,
		conf:   conf,

		tableRepo: tableRepo,
		scoreRepo: scoreRepo,
		gameRepo:  gameRepo,
	}
}

// LoadTable reads the table from the configured source.
func (that *GameManager) LoadTable(ctx context.Context) (*qtable.Table, error) {
	table := qtable.New(that.conf.Table.Capacity)

	if that.conf.Table.Source == config.SourceRedis && that.tableRepo != nil {
		if err := that.tableRepo.Load(ctx, that.conf.Redis.Key, table); err != nil {
			if errors.Is(err, repository.ErrTableNotFound) {
				return nil, ErrNoTrainedTable
			}
			return nil, fmt.Errorf("failed to load q-table snapshot: %w", err)
		}

		return table, nil
	}

	if err := table.Load(that.conf.Table.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoTrainedTable
		}
		return nil, fmt.Errorf("failed to load q-table: %w", err)
	}

	return table, nil
}

// PlayGame runs one game on in/out and records its outcome. The agent keeps
// a small exploration rate so games vary.
func (that *GameManager) PlayGame(ctx context.Context, table *qtable.Table, in io.Reader, out io.Writer) (*repository.GameRecord, error) {
	log := that.logger.With("method", "PlayGame")

	human := entity.PlayerA
	if that.conf.Play.HumanMark == entity.PlayerB.Symbol() {
		human = entity.PlayerB
	}
	agentMark := human.Opponent()

	renderer := console.NewRenderer(out, true)
	person := console.NewHuman(in, out)
	cpu := agent.NewFrozen(that.rng, table, that.conf.Play.ExplorationRate)

	seats := map[entity.Mark]tictactoe.MoveSource{
		human:     person,
		agentMark: cpu,
	}

	fmt.Fprintf(out, "You play %s against the agent.\n\n", human.Symbol())
	renderer.Board(entity.Board{})

	driver := tictactoe.NewDriver(that.logger, that.rng).WithObserver(renderer)
	result, err := driver.Play(seats[entity.PlayerA], seats[entity.PlayerB])
	if err != nil {
		return nil, fmt.Errorf("game failed: %w", err)
	}

	renderer.Outcome(result.Outcome, human)

	game := &repository.GameRecord{
		ID:        uuid.NewString(),
		HumanMark: human,
		Starter:   result.Starter,
		Outcome:   result.Outcome,
		Board:     result.Board,
		Moves:     result.Moves,
		PlayedAt:  time.Now(),
	}

	log.Info("game finished", "game_id", game.ID, "outcome", game.Outcome.String(), "moves", game.Moves)

	if that.scoreRepo != nil {
		score, err := that.scoreRepo.Record(ctx, that.conf.Redis.Key, result.Outcome, agentMark)
		if err != nil {
			log.Error("failed to record score", "error", err)
		} else {
			fmt.Fprintf(out, "Agent score: %d wins, %d losses, %d draws\n", score.Wins, score.Losses, score.Draws)
		}
	}

	if that.gameRepo != nil {
		if err = that.gameRepo.SaveGame(ctx, game); err != nil {
			log.Error("failed to save game", "error", err)
		}
	}

	return game, nil
}
