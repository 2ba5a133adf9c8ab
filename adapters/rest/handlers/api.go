package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"todo-service/core"
)

type Lists interface {
	CreateList(ctx context.Context, in core.ListCreate) (core.ToDoList, error)
	GetList(ctx context.Context, id uuid.UUID) (core.ToDoList, error)
	UpdateList(ctx context.Context, id uuid.UUID, u core.ListUpdate) (core.ToDoList, error)
	DeleteList(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]core.ToDoList, error)
}

type Tasks interface {
	CreateTask(ctx context.Context, listID uuid.UUID, in core.TaskCreate) (core.Task, error)
	GetTask(ctx context.Context, listID, taskID uuid.UUID) (core.Task, error)
	UpdateTask(ctx context.Context, listID, taskID uuid.UUID, u core.TaskUpdate) (core.Task, error)
	DeleteTask(ctx context.Context, listID, taskID uuid.UUID) error
	ChangeStatus(ctx context.Context, listID, taskID uuid.UUID, status core.TaskStatus) (core.Task, error)
	ListTasks(ctx context.Context, listID uuid.UUID, f core.ListTasksFilter) ([]core.Task, error)
	CompletionPercentage(ctx context.Context, listID uuid.UUID) (float64, error)
}

type Deps struct {
	Lists   Lists
	Tasks   Tasks
	Storage core.Pinger
}

var (
	_ Lists = (*core.ListService)(nil)
	_ Tasks = (*core.TaskService)(nil)
)

func Register(mux *http.ServeMux, log *slog.Logger, deps Deps, timeout time.Duration) {
	// health
	mux.Handle("GET /ping", NewHealthHandler(log, deps.Storage, timeout))

	// lists
	mux.Handle("POST /lists", NewCreateListHandler(log, deps.Lists, timeout))
	mux.Handle("GET /lists", NewListListsHandler(log, deps.Lists, timeout))
	mux.Handle("GET /lists/{list_id}", NewGetListHandler(log, deps.Lists, timeout))
	mux.Handle("PUT /lists/{list_id}", NewUpdateListHandler(log, deps.Lists, timeout))
	mux.Handle("DELETE /lists/{list_id}", NewDeleteListHandler(log, deps.Lists, timeout))

	// tasks
	mux.Handle("POST /lists/{list_id}/tasks", NewCreateTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("GET /lists/{list_id}/tasks", NewListTasksHandler(log, deps.Tasks, timeout))
	mux.Handle("GET /lists/{list_id}/tasks/completion-percentage", NewCompletionHandler(log, deps.Tasks, timeout))
	mux.Handle("GET /lists/{list_id}/tasks/{task_id}", NewGetTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("PUT /lists/{list_id}/tasks/{task_id}", NewUpdateTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("DELETE /lists/{list_id}/tasks/{task_id}", NewDeleteTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("PATCH /lists/{list_id}/tasks/{task_id}/status", NewChangeStatusHandler(log, deps.Tasks, timeout))
}
