package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

const (
	fieldWins   = "wins"
	fieldLosses = "losses"
	fieldDraws  = "draws"
)

// Score is the running tally of interactive games from the agent's side.
type Score struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Draws  int64 `json:"draws"`
}

type ScoreRepository interface {
	Record(ctx context.Context, name string, outcome entity.Outcome, agentMark entity.Mark) (*Score, error)
	Get(ctx context.Context, name string) (*Score, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func (that *dbScore) Record(ctx context.Context, name string, outcome entity.Outcome, agentMark entity.Mark) (*Score, error) {
	field := fieldDraws
	if outcome.Status == entity.StatusWon {
		field = fieldLosses
		if outcome.Winner == agentMark {
			field = fieldWins
		}
	}

	if err := that.client.HIncrBy(ctx, scoreKey(name), field, 1).Err(); err != nil {
		return nil, fmt.Errorf("failed to increment score: %w", err)
	}

	return that.Get(ctx, name)
}

func (that *dbScore) Get(ctx context.Context, name string) (*Score, error) {
	response, err := that.client.HGetAll(ctx, scoreKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	score := &Score{}
	for field, target := range map[string]*int64{
		fieldWins:   &score.Wins,
		fieldLosses: &score.Losses,
		fieldDraws:  &score.Draws,
	} {
		raw, ok := response[field]
		if !ok {
			continue
		}

		if *target, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}
	}

	return score, nil
}

func scoreKey(name string) string {
	return "score:" + name
}
