package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todo-service/core"
)

const listColumns = `id, name, COALESCE(description, '') AS description, created_at, updated_at`

func (db *DB) CreateList(ctx context.Context, in core.ListCreate) (core.ToDoList, error) {
	const q = `
		INSERT INTO lists(id, name, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING ` + listColumns + `;
	`

	var l core.ToDoList
	if err := db.conn.GetContext(ctx, &l, q, uuid.New(), in.Name, in.Description); err != nil {
		if isCheckViolation(err) {
			return core.ToDoList{}, fmt.Errorf("insert list: %w", core.ErrInvalidArgs)
		}
		return core.ToDoList{}, fmt.Errorf("insert list: %w", err)
	}
	return l, nil
}

func (db *DB) GetList(ctx context.Context, id uuid.UUID) (core.ToDoList, bool, error) {
	const q = `SELECT ` + listColumns + ` FROM lists WHERE id = $1`

	var l core.ToDoList
	if err := db.conn.GetContext(ctx, &l, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ToDoList{}, false, nil
		}
		return core.ToDoList{}, false, fmt.Errorf("get list: %w", err)
	}
	return l, true, nil
}

func (db *DB) UpdateList(ctx context.Context, id uuid.UUID, u core.ListUpdate) (core.ToDoList, bool, error) {
	// $3 says whether description was supplied; an empty one is stored as NULL.
	const q = `
		UPDATE lists
		SET name = COALESCE($2, name),
		    description = CASE WHEN $3::boolean THEN NULLIF($4, '') ELSE description END,
		    updated_at = GREATEST(now(), created_at)
		WHERE id = $1
		RETURNING ` + listColumns + `;
	`

	var desc string
	if u.Description != nil {
		desc = *u.Description
	}

	var l core.ToDoList
	if err := db.conn.GetContext(ctx, &l, q, id, u.Name, u.Description != nil, desc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ToDoList{}, false, nil
		}
		if isCheckViolation(err) {
			return core.ToDoList{}, false, fmt.Errorf("update list: %w", core.ErrInvalidArgs)
		}
		return core.ToDoList{}, false, fmt.Errorf("update list: %w", err)
	}
	return l, true, nil
}

// DeleteList removes the tasks and the list in one transaction. The foreign key
// also cascades, so a concurrent insert cannot leave an orphan behind.
func (db *DB) DeleteList(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool

	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE list_id = $1`, id); err != nil {
			return fmt.Errorf("delete list tasks: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		deleted = aff > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (db *DB) ListLists(ctx context.Context) ([]core.ToDoList, error) {
	const q = `SELECT ` + listColumns + ` FROM lists ORDER BY created_at ASC, id ASC`

	out := []core.ToDoList{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return out, nil
}
