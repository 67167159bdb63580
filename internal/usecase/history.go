package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository"
)

var ErrHistoryDisabled = errors.New("history storage is not configured")

type historyReader interface {
	ListGames(ctx context.Context, limit int) ([]*repository.GameRecord, error)
	FindRun(ctx context.Context, id string) (*repository.RunRecord, error)
}

// History prints stored games and training runs.
type History struct {
	logger *slog.Logger
	repo   historyReader
}

// NewHistory - repo may be nil, every call then fails with ErrHistoryDisabled.
func NewHistory(logger *slog.Logger, repo historyReader) *History {
	return &History{
		logger: logger.With("component", "history"),
		repo:   repo,
	}
}

// RecentGames writes the latest games, newest first.
func (that *History) RecentGames(ctx context.Context, limit int, out io.Writer) error {
	if that.repo == nil {
		return ErrHistoryDisabled
	}

	games, err := that.repo.ListGames(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games played yet.")
		return nil
	}

	for _, game := range games {
		fmt.Fprintf(out, "%s  %s  human %s  %s  %d moves  %s\n",
			game.PlayedAt.Local().Format("2006-01-02 15:04"),
			game.ID,
			game.HumanMark.Symbol(),
			resultFor(game.Outcome, game.HumanMark),
			game.Moves,
			game.Board.StateKey().String(),
		)
	}

	return nil
}

// Run writes the summary of one training run.
func (that *History) Run(ctx context.Context, id string, out io.Writer) error {
	if that.repo == nil {
		return ErrHistoryDisabled
	}

	run, err := that.repo.FindRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find run %s: %w", id, err)
	}

	fmt.Fprintf(out, "Run %s finished %s: %d episodes, O won %d, X won %d, %d draws, %d states in %s\n",
		run.ID,
		run.FinishedAt.Local().Format("2006-01-02 15:04"),
		run.Episodes, run.WinsA, run.WinsB, run.Draws, run.States, run.TablePath,
	)

	return nil
}

func resultFor(outcome entity.Outcome, human entity.Mark) string {
	switch {
	case outcome.Status == entity.StatusDrawn:
		return "draw"
	case outcome.Winner == human:
		return "win"
	default:
		return "loss"
	}
}
