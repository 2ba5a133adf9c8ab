package db

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_lists.up.sql
var createListsUp string

//go:embed migrations/02_create_tasks.up.sql
var createTasksUp string

//go:embed migrations/03_index_tasks.up.sql
var indexTasksUp string

// Migrate создаёт схему, если её ещё нет.
func (db *DB) Migrate(ctx context.Context) error {
	db.log.Debug("running todo db migrations")

	if _, err := db.conn.ExecContext(ctx, createListsUp); err != nil {
		return fmt.Errorf("apply lists migration: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, createTasksUp); err != nil {
		return fmt.Errorf("apply tasks migration: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, indexTasksUp); err != nil {
		return fmt.Errorf("apply tasks index migration: %w", err)
	}

	db.log.Debug("todo db migrations finished")
	return nil
}
