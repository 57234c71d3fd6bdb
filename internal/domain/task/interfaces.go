package task

import "context"

// Repository is the task collection as seen by callers. The KV-backed Store
// rewrites the whole collection on every mutation; other implementations
// may update in place.
type Repository interface {
	GetAll(ctx context.Context) []Task
	GetByID(ctx context.Context, id string) (*Task, bool)
	Add(ctx context.Context, t Task) bool
	Create(ctx context.Context, in CreateInput) (*Task, error)
	Update(ctx context.Context, id string, p Patch) bool
	Delete(ctx context.Context, id string) bool
	Search(ctx context.Context, query string) []Task
	GetByStatus(ctx context.Context, status Status) []Task
	GetByPriority(ctx context.Context, priority Priority) []Task
	List(ctx context.Context, f Filter) []Task
	Stats(ctx context.Context) Stats
	Replace(ctx context.Context, tasks []Task) bool
}
