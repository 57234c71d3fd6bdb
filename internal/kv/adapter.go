// Package kv is the JSON persistence adapter over a durable key-value store.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/rpggio/taskpad/internal/repository"
)

// Adapter serializes values to JSON documents in a repository.KVStore.
//
// None of its methods return errors. A failed read yields the caller's
// default and a failed write yields false; the cause is logged.
type Adapter struct {
	store  repository.KVStore
	logger *slog.Logger
}

// NewAdapter creates an adapter over store.
func NewAdapter(store repository.KVStore, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{store: store, logger: logger}
}

// Get decodes the document under key, returning def when it is absent,
// unreadable or not valid JSON for T.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) T {
	if a == nil || a.store == nil {
		return def
	}
	data, err := a.store.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			a.logger.Error("error reading from store", "key", key, "error", err)
		}
		return def
	}
	if len(data) == 0 {
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		a.logger.Error("error decoding stored value", "key", key, "error", err)
		return def
	}
	return value
}

// Set encodes value and writes it under key.
func (a *Adapter) Set(ctx context.Context, key string, value any) bool {
	if a == nil || a.store == nil {
		return false
	}
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("error encoding value", "key", key, "error", err)
		return false
	}
	if err := a.store.Write(ctx, key, data); err != nil {
		a.logger.Error("error writing to store", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes the document under key.
func (a *Adapter) Remove(ctx context.Context, key string) bool {
	if a == nil || a.store == nil {
		return false
	}
	if err := a.store.Delete(ctx, key); err != nil {
		a.logger.Error("error removing from store", "key", key, "error", err)
		return false
	}
	return true
}

// Clear deletes every document.
func (a *Adapter) Clear(ctx context.Context) bool {
	if a == nil || a.store == nil {
		return false
	}
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error("error clearing store", "error", err)
		return false
	}
	return true
}
