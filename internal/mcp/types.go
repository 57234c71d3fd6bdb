package mcp

import (
	"github.com/rpggio/taskpad/internal/domain/task"
)

type AnalyzeTaskParams struct {
	Title       string `json:"title" jsonschema:"task title"`
	Description string `json:"description" jsonschema:"task description"`
}

type AnalyzeTaskResponse struct {
	SuggestedPriority task.Priority `json:"suggested_priority"`
	EstimatedTime     string        `json:"estimated_time"`
	Tags              []string      `json:"tags"`
	Deadline          string        `json:"deadline,omitempty"`
	Reasoning         string        `json:"reasoning"`
}

type FormatDescriptionParams struct {
	Description string `json:"description" jsonschema:"free-form description to restructure"`
}

type FormatDescriptionResponse struct {
	Description string `json:"description"`
}

type TaskStatsParams struct{}

type TaskStatsResponse struct {
	Total          int `json:"total"`
	Todo           int `json:"todo"`
	InProgress     int `json:"in_progress"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	High           int `json:"high"`
	Medium         int `json:"medium"`
	Low            int `json:"low"`
	CompletionRate int `json:"completion_rate"`
}

type SearchTasksParams struct {
	Query string `json:"query" jsonschema:"case-insensitive text matched against title, description and tags"`
}

type ListTasksParams struct {
	Status   string `json:"status,omitempty" jsonschema:"todo, in-progress or completed"`
	Priority string `json:"priority,omitempty" jsonschema:"low, medium or high"`
}

// TaskSummary is the tool view of a task. Timestamps are RFC 3339 strings.
type TaskSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    task.Priority `json:"priority"`
	Status      task.Status   `json:"status"`
	DueDate     string        `json:"due_date,omitempty"`
	Tags        []string      `json:"tags"`
	Overdue     bool          `json:"overdue"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

type TaskListResponse struct {
	Tasks []TaskSummary `json:"tasks"`
	Count int           `json:"count"`
}

type GenerateReportParams struct {
	Start string `json:"start,omitempty" jsonschema:"first creation date included, YYYY-MM-DD"`
	End   string `json:"end,omitempty" jsonschema:"last creation date included, YYYY-MM-DD"`
}

type GenerateReportResponse struct {
	Period string `json:"period"`
	Report string `json:"report"`
}
