package core

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrParentGone is returned by TaskStore.CreateTask when the list does not exist
// at insert time.
var ErrParentGone = errors.New("parent list does not exist")

type Pinger interface {
	Ping(ctx context.Context) error
}

// ListStore persists lists. Missing records are reported through the found/deleted
// flags, never as an error.
type ListStore interface {
	// CreateList stores a new list with a fresh id and created_at == updated_at.
	CreateList(ctx context.Context, in ListCreate) (ToDoList, error)
	GetList(ctx context.Context, id uuid.UUID) (ToDoList, bool, error)
	// UpdateList merges the set fields and refreshes updated_at. It never creates a record.
	UpdateList(ctx context.Context, id uuid.UUID, u ListUpdate) (ToDoList, bool, error)
	// DeleteList removes the list together with all of its tasks atomically.
	DeleteList(ctx context.Context, id uuid.UUID) (bool, error)
	ListLists(ctx context.Context) ([]ToDoList, error)
}

// TaskStore persists tasks. Every lookup is scoped by list id and task id.
type TaskStore interface {
	// CreateTask applies TaskCreate.WithDefaults and fails with ErrParentGone
	// when listID is unknown.
	CreateTask(ctx context.Context, listID uuid.UUID, in TaskCreate) (Task, error)
	GetTask(ctx context.Context, listID, taskID uuid.UUID) (Task, bool, error)
	UpdateTask(ctx context.Context, listID, taskID uuid.UUID, u TaskUpdate) (Task, bool, error)
	DeleteTask(ctx context.Context, listID, taskID uuid.UUID) (bool, error)
	// ListTasks returns the tasks of a list; zero-value filter fields match everything.
	ListTasks(ctx context.Context, listID uuid.UUID, f ListTasksFilter) ([]Task, error)
}
