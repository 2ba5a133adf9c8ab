package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"todo-service/core"
)

const taskColumns = `id, list_id, title, COALESCE(description, '') AS description, status, priority, created_at, updated_at`

func (db *DB) CreateTask(ctx context.Context, listID uuid.UUID, in core.TaskCreate) (core.Task, error) {
	const q = `
		INSERT INTO tasks(id, list_id, title, description, status, priority)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING ` + taskColumns + `;
	`

	in = in.WithDefaults()

	var t core.Task
	err := db.conn.GetContext(ctx, &t, q,
		uuid.New(), listID, in.Title, in.Description, string(in.Status), string(in.Priority))
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.Task{}, fmt.Errorf("insert task in list %s: %w", listID, core.ErrParentGone)
		}
		if isCheckViolation(err) {
			return core.Task{}, fmt.Errorf("insert task: %w", core.ErrInvalidArgs)
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (db *DB) GetTask(ctx context.Context, listID, taskID uuid.UUID) (core.Task, bool, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE list_id = $1 AND id = $2`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, listID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, false, nil
		}
		return core.Task{}, false, fmt.Errorf("get task: %w", err)
	}
	return t, true, nil
}

func (db *DB) UpdateTask(ctx context.Context, listID, taskID uuid.UUID, u core.TaskUpdate) (core.Task, bool, error) {
	const q = `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = CASE WHEN $4::boolean THEN NULLIF($5, '') ELSE description END,
		    status = COALESCE($6, status),
		    priority = COALESCE($7, priority),
		    updated_at = GREATEST(now(), created_at)
		WHERE list_id = $1 AND id = $2
		RETURNING ` + taskColumns + `;
	`

	var desc string
	if u.Description != nil {
		desc = *u.Description
	}

	var t core.Task
	err := db.conn.GetContext(ctx, &t, q,
		listID, taskID, u.Title, u.Description != nil, desc, statusArg(u.Status), priorityArg(u.Priority))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, false, nil
		}
		if isCheckViolation(err) {
			return core.Task{}, false, fmt.Errorf("update task: %w", core.ErrInvalidArgs)
		}
		return core.Task{}, false, fmt.Errorf("update task: %w", err)
	}
	return t, true, nil
}

func (db *DB) DeleteTask(ctx context.Context, listID, taskID uuid.UUID) (bool, error) {
	const q = `DELETE FROM tasks WHERE list_id = $1 AND id = $2`

	res, err := db.conn.ExecContext(ctx, q, listID, taskID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return aff > 0, nil
}

func (db *DB) ListTasks(ctx context.Context, listID uuid.UUID, f core.ListTasksFilter) ([]core.Task, error) {
	var (
		sb   strings.Builder
		args = []any{listID}
		n    = 2
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE list_id = $1`)

	if f.Status != nil {
		args = append(args, string(*f.Status))
		sb.WriteString(fmt.Sprintf(" AND status = $%d", n))
		n++
	}

	if f.Priority != nil {
		args = append(args, string(*f.Priority))
		sb.WriteString(fmt.Sprintf(" AND priority = $%d", n))
	}

	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func statusArg(st *core.TaskStatus) *string {
	if st == nil {
		return nil
	}
	v := string(*st)
	return &v
}

func priorityArg(p *core.TaskPriority) *string {
	if p == nil {
		return nil
	}
	v := string(*p)
	return &v
}
