package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	app "github.com/rocketscienceinc/tictactoe-qlearning/internal"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	mode := flag.String("mode", app.ModeTrain, "train, play, eval or history")
	runID := flag.String("run", "", "training run to show in history mode")
	configPath := flag.String("config", "./config.yml", "path to the config file")
	episodes := flag.Int("episodes", 0, "overrides training.episodes when positive")
	flag.Parse()

	conf := initConfig(*configPath)
	if *episodes > 0 {
		conf.Training.Episodes = *episodes
	}

	logger := initLogger(conf)

	if err := app.RunApp(logger, conf, app.Options{
		Mode:  *mode,
		RunID: *runID,
		In:    os.Stdin,
		Out:   os.Stdout,
	}); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig(path string) *config.Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("failed to load .env file: %w", err))
	}

	if filepath.IsAbs(path) {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, path))
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
