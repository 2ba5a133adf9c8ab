package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"todo-service/core"
)

const maxBodySize = 1 << 20

type ChangeStatusIn struct {
	Status core.TaskStatus `json:"status"`
}

type CompletionOut struct {
	ListID               uuid.UUID `json:"list_id"`
	CompletionPercentage float64   `json:"completion_percentage"`
}

type PoolOut struct {
	Open      int   `json:"open"`
	InUse     int   `json:"in_use"`
	Idle      int   `json:"idle"`
	MaxOpen   int   `json:"max_open"`
	WaitCount int64 `json:"wait_count"`
}

// HealthOut is the /ping body. Pool is set only for database-backed storage.
type HealthOut struct {
	Storage string   `json:"storage"`
	Pool    *PoolOut `json:"pool,omitempty"`
}

type MessageOut struct {
	Message string `json:"message"`
}

// Decode reads a single JSON object from the request body into dst.
// Unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid json: trailing data")
	}
	return nil
}

// PathID parses the named path value as a uuid.
func PathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ParseStatus accepts the wire names of task statuses.
func ParseStatus(s string) (core.TaskStatus, bool) {
	st := core.TaskStatus(s)
	return st, st.Valid()
}

func ParsePriority(s string) (core.TaskPriority, bool) {
	p := core.TaskPriority(s)
	return p, p.Valid()
}
