package usecase

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/config"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/repository"
)

type mockTableRepo struct {
	mock.Mock
}

func (that *mockTableRepo) Save(ctx context.Context, name string, table *qtable.Table) error {
	return that.Called(ctx, name, table).Error(0)
}

func (that *mockTableRepo) Load(ctx context.Context, name string, table *qtable.Table) error {
	return that.Called(ctx, name, table).Error(0)
}

type mockRunRepo struct {
	mock.Mock
}

func (that *mockRunRepo) SaveRun(ctx context.Context, run *repository.RunRecord) error {
	return that.Called(ctx, run).Error(0)
}

type mockScoreRepo struct {
	mock.Mock
}

func (that *mockScoreRepo) Record(ctx context.Context, name string, outcome entity.Outcome, agentMark entity.Mark) (*repository.Score, error) {
	args := that.Called(ctx, name, outcome, agentMark)
	score, _ := args.Get(0).(*repository.Score)
	return score, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) SaveGame(ctx context.Context, game *repository.GameRecord) error {
	return that.Called(ctx, game).Error(0)
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	return &config.Config{
		LogLevel: "debug",
		Training: config.Training{
			Episodes:        60,
			LearningRate:    0.2,
			Discount:        0.9,
			ExplorationRate: 0.3,
			ReportInterval:  20,
			ChartPath:       filepath.Join(dir, "charts", "training.html"),
		},
		Play: config.Play{
			ExplorationRate: 0,
			HumanMark:       "O",
		},
		Table: config.Table{
			Path:           filepath.Join(dir, "q_table.bin"),
			Capacity:       qtable.DefaultCapacity,
			MemoryCapacity: 9,
			Source:         config.SourceFile,
		},
		Redis: config.Redis{Key: "test"},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 0))
}

type mockHistoryReader struct {
	mock.Mock
}

func (that *mockHistoryReader) ListGames(ctx context.Context, limit int) ([]*repository.GameRecord, error) {
	args := that.Called(ctx, limit)
	games, _ := args.Get(0).([]*repository.GameRecord)
	return games, args.Error(1)
}

func (that *mockHistoryReader) FindRun(ctx context.Context, id string) (*repository.RunRecord, error) {
	args := that.Called(ctx, id)
	run, _ := args.Get(0).(*repository.RunRecord)
	return run, args.Error(1)
}
