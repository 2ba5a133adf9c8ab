package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"todo-service/adapters/rest"
	"todo-service/core"
	"todo-service/pkg/res"
)

// taskPath parses {list_id} and {task_id}; on failure it has already replied.
func taskPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	listID, err := rest.PathID(r, "list_id")
	if err != nil {
		res.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	taskID, err := rest.PathID(r, "task_id")
	if err != nil {
		res.Error(w, err.Error(), http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return listID, taskID, true
}

func NewCreateTaskHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, err := rest.PathID(r, "list_id")
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in core.TaskCreate
		if err := rest.Decode(w, r, &in); err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := in.Validate(); err != nil {
			rest.WriteErr(log, w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, listID, in)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, t, http.StatusCreated)
	}
}

func NewGetTaskHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, taskID, ok := taskPath(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, listID, taskID)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, t, http.StatusOK)
	}
}

func NewListTasksHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, err := rest.PathID(r, "list_id")
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		q := r.URL.Query()
		var f core.ListTasksFilter

		if s := q.Get("status"); s != "" {
			st, ok := rest.ParseStatus(s)
			if !ok {
				res.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			f.Status = &st
		}

		if s := q.Get("priority"); s != "" {
			p, ok := rest.ParsePriority(s)
			if !ok {
				res.Error(w, "invalid priority", http.StatusBadRequest)
				return
			}
			f.Priority = &p
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx, listID, f)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, items, http.StatusOK)
	}
}

func NewUpdateTaskHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, taskID, ok := taskPath(w, r)
		if !ok {
			return
		}

		var in core.TaskUpdate
		if err := rest.Decode(w, r, &in); err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := in.Validate(); err != nil {
			rest.WriteErr(log, w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.UpdateTask(ctx, listID, taskID, in)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, taskID, ok := taskPath(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, listID, taskID); err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.NoContent(w)
	}
}

// NewChangeStatusHandler takes the status from ?status= or, when absent, from a JSON body.
func NewChangeStatusHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, taskID, ok := taskPath(w, r)
		if !ok {
			return
		}

		raw := r.URL.Query().Get("status")
		if raw == "" {
			var in rest.ChangeStatusIn
			if err := rest.Decode(w, r, &in); err != nil {
				res.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			raw = string(in.Status)
		}

		st, ok := rest.ParseStatus(raw)
		if !ok {
			res.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.ChangeStatus(ctx, listID, taskID, st)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, t, http.StatusOK)
	}
}

func NewCompletionHandler(log *slog.Logger, svc Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, err := rest.PathID(r, "list_id")
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		pct, err := svc.CompletionPercentage(ctx, listID)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, rest.CompletionOut{ListID: listID, CompletionPercentage: pct}, http.StatusOK)
	}
}
