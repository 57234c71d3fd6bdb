package transport

import (
	"encoding/json"

	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/domain/user"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse answers a successful login.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    user.Account `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

// TaskCreated answers POST /api/tasks.
type TaskCreated struct {
	Success bool      `json:"success"`
	Task    task.Task `json:"task"`
	Message string    `json:"message"`
}

// TaskUpdated answers PUT /api/tasks/{id}. Updates echoes the accepted body.
type TaskUpdated struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Updates json.RawMessage `json:"updates"`
}

// TaskDeleted answers DELETE /api/tasks/{id}.
type TaskDeleted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AnalyzeAction selects the /api/ai/analyze variant.
type AnalyzeAction string

const (
	// ActionSuggest is the default when no action is given.
	ActionSuggest AnalyzeAction = "suggest"
	ActionFormat  AnalyzeAction = "format_description"
)

// SuggestRequest asks for classification of a task.
type SuggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FormatRequest asks for a restructured description.
type FormatRequest struct {
	Description string `json:"description"`
}

// Suggestions is the wire form of a classification.
type Suggestions struct {
	SuggestedPriority task.Priority `json:"suggestedPriority"`
	EstimatedTime     string        `json:"estimatedTime"`
	SuggestedTags     []string      `json:"suggestedTags"`
	SuggestedDeadline string        `json:"suggestedDeadline"`
	Reasoning         string        `json:"reasoning"`
}

// AISuggestions converts the wire form into the record attached to a task.
func (s Suggestions) AISuggestions() *task.AISuggestions {
	out := &task.AISuggestions{
		SuggestedPriority: s.SuggestedPriority,
		EstimatedTime:     s.EstimatedTime,
		Tags:              s.SuggestedTags,
		Reasoning:         s.Reasoning,
	}
	if s.SuggestedDeadline != "" {
		deadline := s.SuggestedDeadline
		out.Deadline = &deadline
	}
	return out
}

// SuggestResponse answers the suggest variant.
type SuggestResponse struct {
	Success     bool        `json:"success"`
	Suggestions Suggestions `json:"suggestions"`
}

// FormatResponse answers the format_description variant.
type FormatResponse struct {
	Success              bool   `json:"success"`
	FormattedDescription string `json:"formattedDescription"`
}
