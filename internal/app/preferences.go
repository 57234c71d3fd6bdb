package app

import (
	"context"

	"github.com/rpggio/taskpad/internal/kv"
)

// View names for the task list.
const (
	ViewList   = "list"
	ViewKanban = "kanban"
)

// Preferences are per-installation display settings.
type Preferences struct {
	DefaultView   string `json:"defaultView"`
	ShowCompleted bool   `json:"showCompleted"`
	Color         bool   `json:"color"`
}

// DefaultPreferences are used until preferences are saved.
func DefaultPreferences() Preferences {
	return Preferences{DefaultView: ViewList, ShowCompleted: true, Color: true}
}

// Preferences loads saved preferences, falling back to defaults.
func (a *App) Preferences(ctx context.Context) Preferences {
	p := kv.Get(ctx, a.kv, kv.KeyPreferences, DefaultPreferences())
	if p.DefaultView != ViewList && p.DefaultView != ViewKanban {
		p.DefaultView = ViewList
	}
	return p
}

// SavePreferences persists p.
func (a *App) SavePreferences(ctx context.Context, p Preferences) bool {
	return a.kv.Set(ctx, kv.KeyPreferences, p)
}
