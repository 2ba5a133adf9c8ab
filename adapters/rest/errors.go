package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"todo-service/core"
	"todo-service/pkg/res"
)

// WriteErr maps domain errors to HTTP responses. Unexpected errors are logged
// and hidden behind a generic 500.
func WriteErr(log *slog.Logger, w http.ResponseWriter, err error) {
	var verr *core.ValidationError

	switch {
	case errors.As(err, &verr):
		res.ErrorDetails(w, "validation failed", verr.Violations, http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrListNotFound), errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("internal error", "error", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
