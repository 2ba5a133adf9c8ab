package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"todo-service/adapters/rest"
	"todo-service/core"
	"todo-service/pkg/res"
)

func NewCreateListHandler(log *slog.Logger, svc Lists, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in core.ListCreate
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

		l, err := svc.CreateList(ctx, in)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, l, http.StatusCreated)
	}
}

func NewGetListHandler(log *slog.Logger, svc Lists, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := rest.PathID(r, "list_id")
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		l, err := svc.GetList(ctx, id)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, l, http.StatusOK)
	}
}

func NewListListsHandler(log *slog.Logger, svc Lists, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListAll(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, items, http.StatusOK)
	}
}

func NewUpdateListHandler(log *slog.Logger, svc Lists, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := rest.PathID(r, "list_id")
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in core.ListUpdate
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

		l, err := svc.UpdateList(ctx, id, in)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, l, http.StatusOK)
	}
}

func NewDeleteListHandler(log *slog.Logger, svc Lists, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := rest.PathID(r, "list_id")
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteList(ctx, id); err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.JSON(w, rest.MessageOut{Message: "List deleted successfully"}, http.StatusOK)
	}
}
