package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel          string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Seed              uint64   `yaml:"seed" env:"SEED" env-default:"0"`
	Training          Training `yaml:"training"`
	Play              Play     `yaml:"play"`
	Table             Table    `yaml:"table"`
	Redis             Redis    `yaml:"redis"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH"`
}

type Training struct {
	Episodes        int     `yaml:"episodes" env:"TRAINING_EPISODES" env-default:"500"`
	LearningRate    float32 `yaml:"learning-rate" env:"TRAINING_LEARNING_RATE" env-default:"0.2"`
	Discount        float32 `yaml:"discount" env:"TRAINING_DISCOUNT" env-default:"0.9"`
	ExplorationRate float64 `yaml:"exploration-rate" env:"TRAINING_EXPLORATION_RATE" env-default:"0.3"`
	ReportInterval  int     `yaml:"report-interval" env:"TRAINING_REPORT_INTERVAL" env-default:"100"`
	ChartPath       string  `yaml:"chart-path" env:"TRAINING_CHART_PATH"`
	EvalGames       int     `yaml:"eval-games" env:"TRAINING_EVAL_GAMES" env-default:"200"`
}

type Play struct {
	ExplorationRate float64 `yaml:"exploration-rate" env:"PLAY_EXPLORATION_RATE" env-default:"0.2"`
	HumanMark       string  `yaml:"human-mark" env:"PLAY_HUMAN_MARK" env-default:"O"`
}

type Table struct {
	Path           string `yaml:"path" env:"TABLE_PATH" env-default:"q_table.bin"`
	Capacity       int    `yaml:"capacity" env:"TABLE_CAPACITY" env-default:"5000"`
	MemoryCapacity int    `yaml:"memory-capacity" env:"TABLE_MEMORY_CAPACITY" env-default:"9"`
	Source         string `yaml:"source" env:"TABLE_SOURCE" env-default:"file"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Key     string `yaml:"key" env:"REDIS_KEY" env-default:"default"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch {
	case that.Training.Episodes < 0:
		return fmt.Errorf("%w: training episodes must not be negative", ErrInvalidConfig)
	case that.Training.LearningRate <= 0 || that.Training.LearningRate > 1:
		return fmt.Errorf("%w: learning rate must be in (0, 1]", ErrInvalidConfig)
	case that.Training.Discount < 0 || that.Training.Discount > 1:
		return fmt.Errorf("%w: discount must be in [0, 1]", ErrInvalidConfig)
	case !isRate(that.Training.ExplorationRate) || !isRate(that.Play.ExplorationRate):
		return fmt.Errorf("%w: exploration rates must be in [0, 1]", ErrInvalidConfig)
	case that.Table.Capacity <= 0 || that.Table.MemoryCapacity <= 0:
		return fmt.Errorf("%w: capacities must be positive", ErrInvalidConfig)
	case that.Table.Source != SourceFile && that.Table.Source != SourceRedis:
		return fmt.Errorf("%w: unknown table source %q", ErrInvalidConfig, that.Table.Source)
	case that.Table.Source == SourceRedis && !that.Redis.Enabled:
		return fmt.Errorf("%w: table source redis requires redis to be enabled", ErrInvalidConfig)
	case that.Play.HumanMark != "O" && that.Play.HumanMark != "X":
		return fmt.Errorf("%w: human mark must be O or X", ErrInvalidConfig)
	}

	return nil
}

func isRate(v float64) bool {
	return v >= 0 && v <= 1
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
