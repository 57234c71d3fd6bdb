package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is a task's urgency level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is a task's workflow state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DateLayout is the ISO calendar date format used for due dates and deadlines.
const DateLayout = "2006-01-02"

// AISuggestions is advisory output from the classifier attached to a task.
// It never changes the task's own priority or tags.
type AISuggestions struct {
	SuggestedPriority Priority `json:"suggestedPriority"`
	EstimatedTime     string   `json:"estimatedTime"`
	Tags              []string `json:"tags"`
	Deadline          *string  `json:"deadline"`
	Reasoning         string   `json:"reasoning"`
}

// Task is a unit of tracked work.
type Task struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Priority      Priority       `json:"priority"`
	Status        Status         `json:"status"`
	DueDate       *string        `json:"dueDate"`
	Tags          []string       `json:"tags"`
	Assignees     []string       `json:"assignees,omitempty"`
	EstimatedTime *string        `json:"estimatedTime"`
	AISuggestions *AISuggestions `json:"aiSuggestions"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CreateInput describes a new task. Only Title and Description are required.
type CreateInput struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Priority      Priority       `json:"priority,omitempty"`
	Status        Status         `json:"status,omitempty"`
	DueDate       string         `json:"dueDate,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Assignees     []string       `json:"assignees,omitempty"`
	EstimatedTime string         `json:"estimatedTime,omitempty"`
	AISuggestions *AISuggestions `json:"aiSuggestions,omitempty"`
}

// Patch carries the fields of a partial update. Nil fields are left alone.
// An empty DueDate or EstimatedTime clears the value.
type Patch struct {
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Priority      *Priority      `json:"priority,omitempty"`
	Status        *Status        `json:"status,omitempty"`
	DueDate       *string        `json:"dueDate,omitempty"`
	Tags          []string       `json:"tags"`
	Assignees     []string       `json:"assignees"`
	EstimatedTime *string        `json:"estimatedTime,omitempty"`
	AISuggestions *AISuggestions `json:"aiSuggestions,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil &&
		p.DueDate == nil && p.Tags == nil && p.Assignees == nil && p.EstimatedTime == nil &&
		p.AISuggestions == nil
}

// New builds a task from input with a fresh id and createdAt == updatedAt == now.
func New(in CreateInput, now time.Time) *Task {
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	status := in.Status
	if status == "" {
		status = StatusTodo
	}
	return &Task{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Priority:      priority,
		Status:        status,
		DueDate:       optional(in.DueDate),
		Tags:          dedupe(in.Tags),
		Assignees:     dedupe(in.Assignees),
		EstimatedTime: optional(in.EstimatedTime),
		AISuggestions: in.AISuggestions,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Apply merges p into a copy of t and stamps updatedAt. updatedAt never
// moves backwards and createdAt is never touched.
func (t Task) Apply(p Patch, now time.Time) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = optional(*p.DueDate)
	}
	if p.Tags != nil {
		t.Tags = dedupe(p.Tags)
	}
	if p.Assignees != nil {
		t.Assignees = dedupe(p.Assignees)
	}
	if p.EstimatedTime != nil {
		t.EstimatedTime = optional(*p.EstimatedTime)
	}
	if p.AISuggestions != nil {
		t.AISuggestions = p.AISuggestions
	}
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
	return t
}

// Due parses the due date. Calendar dates resolve to UTC midnight.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	return ParseDate(*t.DueDate)
}

// Overdue reports whether the task is past its due date and not completed.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	due, ok := t.Due()
	return ok && due.Before(now)
}

// ParseDate accepts an ISO calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// HasTag reports whether the task carries tag, case-insensitively.
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if strings.EqualFold(existing, tag) {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
