package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/config"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/usecase"
)

const (
	ModeTrain   = "train"
	ModePlay    = "play"
	ModeEval    = "eval"
	ModeHistory = "history"

	historyLimit = 20
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrUnknownMode  = errors.New("unknown mode")
)

// Options selects what RunApp does and where the console talks.
type Options struct {
	Mode string
	// RunID picks a training run to show in history mode.
	RunID string
	In    io.Reader
	Out   io.Writer
}

// RunApp - runs the application in the given mode.
func RunApp(logger *slog.Logger, conf *config.Config, opts Options) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, 0))

	var (
		tableRepo   repository.TableRepository
		scoreRepo   repository.ScoreRepository
		historyRepo repository.HistoryRepository
	)

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		tableRepo = repository.NewTableRepository(redisStorage)
		scoreRepo = repository.NewScoreRepository(redisStorage)
	}

	if conf.SQLiteStoragePath != "" {
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return fmt.Errorf("could not open sqlite storage: %w", err)
		}

		defer func() {
			if err = sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}()

		if err = sqliteStorage.Init(ctx); err != nil {
			return fmt.Errorf("could not init sqlite storage: %w", err)
		}

		historyRepo = repository.NewHistoryRepository(sqliteStorage.Connection)
	}

	trainer := usecase.NewTrainer(logger, rng, conf, tableRepo, historyRepo)
	gameManager := usecase.NewGameManager(logger, rng, conf, tableRepo, scoreRepo, historyRepo)

	history := usecase.NewHistory(logger, historyRepo)

	mode, in, out := opts.Mode, opts.In, opts.Out

	log.Info("Starting", "mode", mode, "seed", seed)

	switch mode {
	case ModeTrain:
		result, err := trainer.Train(ctx)
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}

		fmt.Fprintf(out, "Trained %d episodes: O won %d, X won %d, %d draws, %d states saved to %s (run %s)\n",
			result.Stats.Episodes, result.Stats.WinsA, result.Stats.WinsB, result.Stats.Draws,
			result.States, conf.Table.Path, result.RunID)
	case ModeEval:
		table, err := gameManager.LoadTable(ctx)
		if err != nil {
			return err
		}

		stats, err := trainer.Evaluate(ctx, table, conf.Training.EvalGames)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		fmt.Fprintf(out, "Against a random player over %d games: %d wins, %d losses, %d draws\n",
			stats.Episodes, stats.WinsA, stats.WinsB, stats.Draws)
	case ModePlay:
		table, err := gameManager.LoadTable(ctx)
		if err != nil {
			return err
		}

		if _, err = gameManager.PlayGame(ctx, table, in, out); err != nil {
			return fmt.Errorf("play failed: %w", err)
		}
	case ModeHistory:
		if opts.RunID != "" {
			return history.Run(ctx, opts.RunID, out)
		}

		return history.RecentGames(ctx, historyLimit, out)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return nil
}
