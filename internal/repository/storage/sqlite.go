package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "modernc.org/sqlite"
)

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			human_mark INTEGER NOT NULL,
			starter    INTEGER NOT NULL,
			status     TEXT NOT NULL,
			winner     INTEGER NOT NULL,
			board      TEXT NOT NULL,
			moves      INTEGER NOT NULL,
			played_at  TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS training_runs (
			id          TEXT PRIMARY KEY,
			episodes    INTEGER NOT NULL,
			wins_a      INTEGER NOT NULL,
			wins_b      INTEGER NOT NULL,
			draws       INTEGER NOT NULL,
			states      INTEGER NOT NULL,
			table_path  TEXT NOT NULL,
			finished_at TIMESTAMP NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
