package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
)

var ErrTableNotFound = errors.New("q-table snapshot not found")

// TableRepository keeps q-table snapshots in redis using the same record
// layout as the table file.
type TableRepository interface {
	Save(ctx context.Context, name string, table *qtable.Table) error
	Load(ctx context.Context, name string, table *qtable.Table) error
}

type dbTable struct {
	client *redis.Client
}

func NewTableRepository(client *redis.Client) TableRepository {
	return &dbTable{
		client: client,
	}
}

func (that *dbTable) Save(ctx context.Context, name string, table *qtable.Table) error {
	var buf bytes.Buffer
	if _, err := table.WriteTo(&buf); err != nil {
		return fmt.Errorf("could not encode q-table: %w", err)
	}

	if err := that.client.Set(ctx, tableKey(name), buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set q-table: %w", err)
	}

	return nil
}

func (that *dbTable) Load(ctx context.Context, name string, table *qtable.Table) error {
	response, err := that.client.Get(ctx, tableKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrTableNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to get q-table: %w", err)
	}

	if _, err = table.ReadFrom(bytes.NewReader(response)); err != nil {
		return fmt.Errorf("failed to decode q-table: %w", err)
	}

	return nil
}

func tableKey(name string) string {
	return "qtable:" + name
}
