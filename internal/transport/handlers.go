package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/validation"
)

const maxBodyBytes = 1 << 20

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) ([]byte, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if _, ok := decodeBody(w, r, &req); !ok {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if res := validation.Credentials(req.Email, req.Password); !res.IsValid {
		writeFailure(w, http.StatusBadRequest, res.First())
		return
	}

	now := s.now()
	acct := user.NewAccount(req.Email, now)
	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		User:    acct,
		Token:   IssueToken(acct.ID, now),
		Message: "Login successful",
	})
}

func (s *Server) handleTasksHint(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Hint{Success: true, Message: "Use client-side taskStorage for GET operations"})
}

func (s *Server) handleTaskHint(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Hint{Success: true, Message: "Use client-side taskStorage.getTaskById()"})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in task.CreateInput
	if _, ok := decodeBody(w, r, &in); !ok {
		return
	}
	if err := task.ValidateCreateInput(in); err != nil {
		writeFailure(w, http.StatusBadRequest, inputMessage(err))
		return
	}

	t := task.New(in, s.now())
	s.logger.Debug("task constructed", "id", t.ID)
	writeJSON(w, http.StatusCreated, TaskCreated{Success: true, Task: *t, Message: "Task created successfully"})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(chi.URLParam(r, "id")) == "" {
		writeFailure(w, http.StatusBadRequest, "Invalid task ID")
		return
	}
	var p task.Patch
	body, ok := decodeBody(w, r, &p)
	if !ok {
		return
	}
	if err := task.ValidatePatch(p); err != nil {
		writeFailure(w, http.StatusBadRequest, inputMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, TaskUpdated{Success: true, Message: "Task updated successfully", Updates: body})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TaskDeleted{Success: true, Message: "Task deleted successfully"})
}

// inputMessage strips the sentinel prefix from a task validation error.
func inputMessage(err error) string {
	if errors.Is(err, task.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), task.ErrInvalidInput.Error()+": ")
	}
	return err.Error()
}
