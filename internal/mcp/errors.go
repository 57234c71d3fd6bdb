package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/taskpad/internal/domain/task"
)

// ToolError is the error a tool reports back to the caller.
type ToolError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *ToolError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to tool error codes. Unknown errors are
// returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var dateErr *task.DateError
	switch {
	case errors.As(err, &dateErr):
		return &ToolError{Code: "INVALID_DATE", Message: dateErr.Error(), RecoveryHint: "Use YYYY-MM-DD"}
	case errors.Is(err, task.ErrInvalidInput):
		return &ToolError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, task.ErrTaskNotFound):
		return &ToolError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Check ID spelling"}
	default:
		return err
	}
}
