package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/validation"
)

// Store keeps the task collection as one JSON document in a kv.Adapter.
//
// Every read reloads the document and every write replaces it. Two
// processes sharing a backend are not coordinated: the last writer wins.
type Store struct {
	kv     *kv.Adapter
	key    string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithKey stores the collection under a key other than kv.KeyTasks.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// NewStore creates a task store.
func NewStore(adapter *kv.Adapter, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{kv: adapter, key: kv.KeyTasks, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Repository = (*Store)(nil)

// GetAll returns every task in insertion order.
func (s *Store) GetAll(ctx context.Context) []Task {
	tasks := kv.Get(ctx, s.kv, s.key, []Task{})
	if tasks == nil {
		return []Task{}
	}
	return tasks
}

func (s *Store) save(ctx context.Context, tasks []Task) bool {
	return s.kv.Set(ctx, s.key, tasks)
}

// GetByID returns the task with id.
func (s *Store) GetByID(ctx context.Context, id string) (*Task, bool) {
	for _, t := range s.GetAll(ctx) {
		if t.ID == id {
			found := t
			return &found, true
		}
	}
	return nil, false
}

// Add appends a fully constructed task.
func (s *Store) Add(ctx context.Context, t Task) bool {
	tasks := s.GetAll(ctx)
	tasks = append(tasks, t)
	return s.save(ctx, tasks)
}

// Create validates input, builds the task and adds it.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Task, error) {
	if err := ValidateCreateInput(in); err != nil {
		return nil, err
	}
	t := New(in, s.now())
	if !s.Add(ctx, *t) {
		return nil, ErrPersist
	}
	s.logger.Debug("task created", "id", t.ID)
	return t, nil
}

// Update merges p into the task with id. It returns false when the id is
// unknown or the collection could not be written.
func (s *Store) Update(ctx context.Context, id string, p Patch) bool {
	tasks := s.GetAll(ctx)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i] = tasks[i].Apply(p, s.now())
		return s.save(ctx, tasks)
	}
	return false
}

// Delete removes the task with id. It returns false, leaving the collection
// untouched, when the id is unknown.
func (s *Store) Delete(ctx context.Context, id string) bool {
	tasks := s.GetAll(ctx)
	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false
	}
	return s.save(ctx, kept)
}

// Search matches query case-insensitively against title, description and tags.
func (s *Store) Search(ctx context.Context, query string) []Task {
	return s.List(ctx, Filter{Search: query})
}

// GetByStatus returns tasks in status.
func (s *Store) GetByStatus(ctx context.Context, status Status) []Task {
	return s.List(ctx, Filter{Status: status})
}

// GetByPriority returns tasks with priority.
func (s *Store) GetByPriority(ctx context.Context, priority Priority) []Task {
	return s.List(ctx, Filter{Priority: priority})
}

// List returns tasks matching every set field of f.
func (s *Store) List(ctx context.Context, f Filter) []Task {
	return f.Apply(s.GetAll(ctx))
}

// Stats computes counts over the current collection. Overdue is evaluated
// against the store clock on every call.
func (s *Store) Stats(ctx context.Context) Stats {
	return ComputeStats(s.GetAll(ctx), s.now())
}

// Replace persists tasks as the whole collection.
func (s *Store) Replace(ctx context.Context, tasks []Task) bool {
	if tasks == nil {
		tasks = []Task{}
	}
	return s.save(ctx, tasks)
}

// ValidateCreateInput applies the shared title and description rules and
// rejects unknown enum values.
func ValidateCreateInput(in CreateInput) error {
	if r := validation.Task(in.Title, in.Description); !r.IsValid {
		return fmt.Errorf("%w: %s", ErrInvalidInput, r.First())
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, in.Priority)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	if in.DueDate != "" {
		if _, ok := ParseDate(in.DueDate); !ok {
			return fmt.Errorf("%w: invalid due date %q", ErrInvalidInput, in.DueDate)
		}
	}
	return nil
}

// ValidatePatch applies the same rules to the fields a patch sets.
func ValidatePatch(p Patch) error {
	var results []validation.Result
	if p.Title != nil {
		results = append(results, validation.Title(*p.Title))
	}
	if p.Description != nil {
		results = append(results, validation.Description(*p.Description))
	}
	if r := validation.Merge(results...); !r.IsValid {
		return fmt.Errorf("%w: %s", ErrInvalidInput, r.First())
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *p.Priority)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
	}
	if p.DueDate != nil && strings.TrimSpace(*p.DueDate) != "" {
		if _, ok := ParseDate(*p.DueDate); !ok {
			return fmt.Errorf("%w: invalid due date %q", ErrInvalidInput, *p.DueDate)
		}
	}
	return nil
}
