package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

var ErrRunNotFound = errors.New("training run not found")

// GameRecord is a finished interactive game.
type GameRecord struct {
	ID        string
	HumanMark entity.Mark
	Starter   entity.Mark
	Outcome   entity.Outcome
	Board     entity.Board
	Moves     int
	PlayedAt  time.Time
}

// RunRecord summarizes one training run.
type RunRecord struct {
	ID         string
	Episodes   int
	WinsA      int
	WinsB      int
	Draws      int
	States     int
	TablePath  string
	FinishedAt time.Time
}

type HistoryRepository interface {
	SaveGame(ctx context.Context, game *GameRecord) error
	ListGames(ctx context.Context, limit int) ([]*GameRecord, error)
	SaveRun(ctx context.Context, run *RunRecord) error
	FindRun(ctx context.Context, id string) (*RunRecord, error)
}

type historyRepository struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &historyRepository{
		conn: conn,
	}
}

func (that *historyRepository) SaveGame(ctx context.Context, game *GameRecord) error {
	query := `INSERT INTO games (id, human_mark, starter, status, winner, board, moves, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		game.ID,
		int(game.HumanMark),
		int(game.Starter),
		game.Outcome.Status.String(),
		int(game.Outcome.Winner),
		game.Board.StateKey().String(),
		game.Moves,
		game.PlayedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *historyRepository) ListGames(ctx context.Context, limit int) ([]*GameRecord, error) {
	query := `SELECT id, human_mark, starter, status, winner, board, moves, played_at
		FROM games ORDER BY played_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list games: %w", err)
	}
	defer rows.Close()

	var games []*GameRecord
	for rows.Next() {
		var game GameRecord
		var human, starter, winner int
		var status, board string

		if err = rows.Scan(&game.ID, &human, &starter, &status, &winner, &board, &game.Moves, &game.PlayedAt); err != nil {
			return nil, fmt.Errorf("can't scan game: %w", err)
		}

		game.HumanMark = entity.Mark(human)
		game.Starter = entity.Mark(starter)
		game.Outcome = entity.Outcome{Status: parseStatus(status), Winner: entity.Mark(winner)}
		if game.Board, err = parseBoard(board); err != nil {
			return nil, fmt.Errorf("can't parse board of game %s: %w", game.ID, err)
		}

		games = append(games, &game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate games: %w", err)
	}

	return games, nil
}

func (that *historyRepository) SaveRun(ctx context.Context, run *RunRecord) error {
	query := `INSERT INTO training_runs (id, episodes, wins_a, wins_b, draws, states, table_path, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		run.ID, run.Episodes, run.WinsA, run.WinsB, run.Draws, run.States, run.TablePath, run.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("can't save training run: %w", err)
	}

	return nil
}

func (that *historyRepository) FindRun(ctx context.Context, id string) (*RunRecord, error) {
	query := `SELECT id, episodes, wins_a, wins_b, draws, states, table_path, finished_at
		FROM training_runs WHERE id = ?`

	var run RunRecord

	err := that.conn.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Episodes, &run.WinsA, &run.WinsB, &run.Draws, &run.States, &run.TablePath, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find training run: %w", err)
	}

	return &run, nil
}

func parseStatus(status string) entity.Status {
	switch status {
	case entity.StatusWon.String():
		return entity.StatusWon
	case entity.StatusDrawn.String():
		return entity.StatusDrawn
	default:
		return entity.StatusContinuing
	}
}

// parseBoard reads the "O-X/-O-/X--" form written by StateKey.String.
func parseBoard(raw string) (entity.Board, error) {
	var key entity.StateKey

	i := 0
	for _, r := range raw {
		if r == '/' {
			continue
		}
		if i >= len(key) {
			return entity.Board{}, fmt.Errorf("board %q is too long", raw)
		}

		switch r {
		case 'O':
			key[i] = entity.PlayerA
		case 'X':
			key[i] = entity.PlayerB
		case '-':
			key[i] = entity.Empty
		default:
			return entity.Board{}, fmt.Errorf("board %q has unknown cell %q", raw, r)
		}
		i++
	}

	if i != len(key) {
		return entity.Board{}, fmt.Errorf("board %q is too short", raw)
	}

	return entity.BoardFromKey(key), nil
}
