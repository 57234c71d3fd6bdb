// Package app is the client-side application state: the local stores, the
// auth session and the API client, wired once at startup.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/taskpad/internal/domain/auth"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/layout"
	"github.com/rpggio/taskpad/internal/pdf"
	"github.com/rpggio/taskpad/internal/report"
	"github.com/rpggio/taskpad/internal/transport"
)

// API is the subset of the mock API the app calls.
type API interface {
	CreateTask(ctx context.Context, in task.CreateInput) (*task.Task, error)
	UpdateTask(ctx context.Context, id string, p task.Patch) (task.Patch, error)
	DeleteTask(ctx context.Context, id string) error
	Suggest(ctx context.Context, title, description string) (*transport.Suggestions, error)
	FormatDescription(ctx context.Context, description string) (string, error)
}

// Deps are the collaborators App is built from.
type Deps struct {
	KV     *kv.Adapter
	Tasks  task.Repository
	Users  *user.Directory
	Auth   *auth.Manager
	API    API
	Now    func() time.Time
	Logger *slog.Logger
}

// App holds application state. It has no package-level instance.
type App struct {
	kv     *kv.Adapter
	tasks  task.Repository
	users  *user.Directory
	auth   *auth.Manager
	api    API
	now    func() time.Time
	logger *slog.Logger
}

// New creates an App.
func New(d Deps) *App {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		kv:     d.KV,
		tasks:  d.Tasks,
		users:  d.Users,
		auth:   d.Auth,
		api:    d.API,
		now:    d.Now,
		logger: d.Logger,
	}
}

// Tasks returns the local task store.
func (a *App) Tasks() task.Repository { return a.tasks }

// Users returns the team directory.
func (a *App) Users() *user.Directory { return a.users }

// Auth returns the session manager.
func (a *App) Auth() *auth.Manager { return a.auth }

// Session returns the current, unexpired session.
func (a *App) Session(ctx context.Context) (*auth.Session, error) {
	return a.auth.Current(ctx)
}

// CreateTask validates input, has the API construct the task and adds the
// result to the local store.
func (a *App) CreateTask(ctx context.Context, in task.CreateInput) (*task.Task, error) {
	if err := task.ValidateCreateInput(in); err != nil {
		return nil, err
	}
	created, err := a.api.CreateTask(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	if !a.tasks.Add(ctx, *created) {
		return nil, task.ErrPersist
	}
	a.logger.Info("task created", "id", created.ID)
	return created, nil
}

// UpdateTask validates p, submits it and merges the accepted fields into the
// local task.
func (a *App) UpdateTask(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	if err := task.ValidatePatch(p); err != nil {
		return nil, err
	}
	if _, ok := a.tasks.GetByID(ctx, id); !ok {
		return nil, task.ErrTaskNotFound
	}
	accepted, err := a.api.UpdateTask(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	if !a.tasks.Update(ctx, id, accepted) {
		return nil, task.ErrPersist
	}
	updated, ok := a.tasks.GetByID(ctx, id)
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return updated, nil
}

// DeleteTask notifies the API and removes the local task.
func (a *App) DeleteTask(ctx context.Context, id string) error {
	if _, ok := a.tasks.GetByID(ctx, id); !ok {
		return task.ErrTaskNotFound
	}
	if err := a.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if !a.tasks.Delete(ctx, id) {
		return task.ErrPersist
	}
	a.logger.Info("task deleted", "id", id)
	return nil
}

// Suggest asks the API for classification of a draft task.
func (a *App) Suggest(ctx context.Context, title, description string) (*task.AISuggestions, error) {
	s, err := a.api.Suggest(ctx, title, description)
	if err != nil {
		return nil, fmt.Errorf("analyzing task: %w", err)
	}
	return s.AISuggestions(), nil
}

// FormatDescription asks the API to restructure a description.
func (a *App) FormatDescription(ctx context.Context, description string) (string, error) {
	out, err := a.api.FormatDescription(ctx, description)
	if err != nil {
		return "", fmt.Errorf("formatting description: %w", err)
	}
	return out, nil
}

// Stats derives counts from the local store.
func (a *App) Stats(ctx context.Context) task.Stats {
	return a.tasks.Stats(ctx)
}

// Metrics summarizes tasks created within r.
func (a *App) Metrics(ctx context.Context, r task.DateRange) report.Metrics {
	return report.Summarize(a.tasks.List(ctx, task.Filter{Created: r}), a.now())
}

// Timeline returns the timeline view data.
func (a *App) Timeline(ctx context.Context) report.TimelineData {
	return report.Timeline(a.tasks.GetAll(ctx))
}

// TeamStats summarizes the directory against the local tasks.
func (a *App) TeamStats(ctx context.Context) user.TeamStats {
	return user.ComputeTeamStats(a.users.List(ctx), a.tasks.GetAll(ctx))
}

// GenerateReport writes the insights report for tasks created within r.
func (a *App) GenerateReport(ctx context.Context, r task.DateRange) string {
	return report.Generate(a.tasks.GetAll(ctx), r, a.now())
}

// ExportPDF renders the report for r as a PDF.
func (a *App) ExportPDF(ctx context.Context, r task.DateRange, w io.Writer) error {
	doc := layout.Paginate(a.GenerateReport(ctx, r), pdf.NewMeasurer())
	if err := pdf.Render(w, doc, pdf.Options{Title: ReportFilename(a.now()), Compress: true}); err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	a.logger.Info("report exported", "pages", len(doc.Pages))
	return nil
}

// ReportFilename is the default PDF name for a report generated at now.
func ReportFilename(now time.Time) string {
	return "Task-Analysis-Report-" + now.UTC().Format(task.DateLayout) + ".pdf"
}
