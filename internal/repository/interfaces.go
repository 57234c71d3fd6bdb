package repository

import "context"

// KVStore persists opaque documents by key.
//
// Implementations know nothing about what a document contains; the task
// collection, the user directory and the auth session are each a single
// value that is rewritten in full.
type KVStore interface {
	// Read returns ErrNotFound when the key is absent.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
