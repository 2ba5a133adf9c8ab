package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrListNotFound = errors.New("list not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidArgs  = errors.New("invalid args")
)

func listNotFound(id uuid.UUID) error {
	return fmt.Errorf("list %s: %w", id, ErrListNotFound)
}

func taskNotFound(id uuid.UUID) error {
	return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
}

// FieldViolation names a payload field and the rule it broke.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError is returned by payload validation; errors.Is(err, ErrInvalidArgs) holds.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Param != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", v.Field, v.Rule, v.Param))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Rule))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgs
}
