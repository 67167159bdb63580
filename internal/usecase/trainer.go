package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/agent"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/config"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/report"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/tictactoe"
)

type tableRepo interface {
	Save(ctx context.Context, name string, table *qtable.Table) error
	Load(ctx context.Context, name string, table *qtable.Table) error
}

type runRepo interface {
	SaveRun(ctx context.Context, run *repository.RunRecord) error
}

// Stats counts episode outcomes. Wins are split by mark.
type Stats struct {
	Episodes int
	WinsA    int
	WinsB    int
	Draws    int
	MaxStep  float32
}

func (that *Stats) Add(result tictactoe.Result) {
	that.Episodes++
	that.MaxStep = max(that.MaxStep, result.MaxStep)

	switch {
	case result.Outcome.Status == entity.StatusDrawn:
		that.Draws++
	case result.Outcome.Winner == entity.PlayerA:
		that.WinsA++
	case result.Outcome.Winner == entity.PlayerB:
		that.WinsB++
	}
}

func (that *Stats) point() report.Point {
	if that.Episodes == 0 {
		return report.Point{}
	}

	total := float64(that.Episodes)
	return report.Point{
		WinRateA: float64(that.WinsA) / total,
		WinRateB: float64(that.WinsB) / total,
		DrawRate: float64(that.Draws) / total,
	}
}

// TrainingReport is returned by Train.
type TrainingReport struct {
	RunID       string
	Stats       Stats
	States      int
	Interrupted bool
	Table       *qtable.Table
}

// Trainer runs self-play episodes between two agents sharing one table.
type Trainer struct {
	logger *slog.Logger
	rng    *rand.Rand
	conf   *config.Config

	tableRepo tableRepo
	runRepo   runRepo
}

// NewTrainer - tableRepo and runRepo may be nil.
func NewTrainer(logger *slog.Logger, rng *rand.Rand, conf *config.Config, tableRepo tableRepo, runRepo runRepo) *Trainer {
	return &Trainer{
		logger: logger.With("component", "trainer"),
		rng:    rng,
		conf:   conf,

		tableRepo: tableRepo,
		runRepo:   runRepo,
	}
}

// Train plays the configured number of episodes, then persists the table. A
// cancelled context stops training between episodes and what was learned so
// far is still saved.
func (that *Trainer) Train(ctx context.Context) (*TrainingReport, error) {
	log := that.logger.With("method", "Train")

	training := that.conf.Training
	table := qtable.New(that.conf.Table.Capacity)

	options := agent.Options{
		Epsilon:        training.ExplorationRate,
		LearningRate:   training.LearningRate,
		Discount:       training.Discount,
		MemoryCapacity: that.conf.Table.MemoryCapacity,
	}

	options.Name = "agent-o"
	agentA := agent.New(that.rng, table, options)
	options.Name = "agent-x"
	agentB := agent.New(that.rng, table, options)

	driver := tictactoe.NewDriver(that.logger, that.rng)
	chart := report.NewChart("Self-play outcomes")

	result := &TrainingReport{
		RunID: uuid.NewString(),
		Table: table,
	}

	log.Info("training started", "run_id", result.RunID, "episodes", training.Episodes)

	var window Stats
	for episode := 1; episode <= training.Episodes; episode++ {
		if ctx.Err() != nil {
			log.Warn("training interrupted", "episode", episode-1)
			result.Interrupted = true
			break
		}

		outcome, err := driver.Play(agentA, agentB)
		if err != nil {
			return nil, fmt.Errorf("episode %d failed: %w", episode, err)
		}

		result.Stats.Add(outcome)
		window.Add(outcome)

		if training.ReportInterval > 0 && episode%training.ReportInterval == 0 {
			point := window.point()
			point.Episode = episode
			chart.Add(point)

			log.Info("training progress",
				"episode", episode,
				"wins_o", window.WinsA,
				"wins_x", window.WinsB,
				"draws", window.Draws,
				"max_step", window.MaxStep,
				"states", table.Len(),
			)
			window = Stats{}
		}
	}

	result.States = table.Len()

	if err := that.persist(ctx, result, chart); err != nil {
		return result, err
	}

	log.Info("training finished",
		"run_id", result.RunID,
		"episodes", result.Stats.Episodes,
		"wins_o", result.Stats.WinsA,
		"wins_x", result.Stats.WinsB,
		"draws", result.Stats.Draws,
		"states", result.States,
	)

	return result, nil
}

func (that *Trainer) persist(ctx context.Context, result *TrainingReport, chart *report.Chart) error {
	log := that.logger.With("method", "persist")

	// Storage calls must outlive an interrupt.
	ctx = context.WithoutCancel(ctx)

	if err := result.Table.Save(that.conf.Table.Path); err != nil {
		return fmt.Errorf("failed to save q-table: %w", err)
	}

	if that.tableRepo != nil {
		if err := that.tableRepo.Save(ctx, that.conf.Redis.Key, result.Table); err != nil {
			return fmt.Errorf("failed to save q-table snapshot: %w", err)
		}
	}

	if that.runRepo != nil {
		run := &repository.RunRecord{
			ID:         result.RunID,
			Episodes:   result.Stats.Episodes,
			WinsA:      result.Stats.WinsA,
			WinsB:      result.Stats.WinsB,
			Draws:      result.Stats.Draws,
			States:     result.States,
			TablePath:  that.conf.Table.Path,
			FinishedAt: time.Now(),
		}
		if err := that.runRepo.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("failed to save training run: %w", err)
		}
	}

	if path := that.conf.Training.ChartPath; path != "" {
		if len(chart.Points()) == 0 {
			log.Warn("no progress points, chart skipped", "path", path)
			return nil
		}

		if err := chart.Save(path); err != nil {
			return fmt.Errorf("failed to save chart: %w", err)
		}
	}

	return nil
}

// Evaluate plays games between the greedy policy of table and a random
// opponent. The agent always holds PlayerA, so WinsA counts its wins.
func (that *Trainer) Evaluate(ctx context.Context, table *qtable.Table, games int) (Stats, error) {
	log := that.logger.With("method", "Evaluate")

	player := agent.NewFrozen(that.rng, table, 0)
	bot := tictactoe.NewBot(that.rng)
	driver := tictactoe.NewDriver(that.logger, that.rng)

	var stats Stats
	for range games {
		if ctx.Err() != nil {
			break
		}

		result, err := driver.Play(player, bot)
		if err != nil {
			return stats, fmt.Errorf("evaluation game failed: %w", err)
		}
		stats.Add(result)
	}

	log.Info("evaluation finished",
		"games", stats.Episodes,
		"wins", stats.WinsA,
		"losses", stats.WinsB,
		"draws", stats.Draws,
	)

	return stats, nil
}
