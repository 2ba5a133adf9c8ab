// Package res writes JSON responses.
package res

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes v with the given status code. Encoding failures are dropped:
// the header is already sent by then.
func JSON(w http.ResponseWriter, v any, code int) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, msg string, code int) {
	JSON(w, errorBody{Error: msg}, code)
}

// ErrorDetails is Error with a "details" member, e.g. per-field violations.
func ErrorDetails(w http.ResponseWriter, msg string, details any, code int) {
	JSON(w, errorBody{Error: msg, Details: details}, code)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
