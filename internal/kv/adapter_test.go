package kv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/repository"
	"github.com/rpggio/taskpad/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestAdapter_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	a := kv.NewAdapter(kv.NewMemoryStore(), nil)

	require.True(t, a.Set(ctx, "k", doc{Name: "a", Items: []string{"x"}}))
	got := kv.Get(ctx, a, "k", doc{})
	require.Equal(t, "a", got.Name)
	require.Equal(t, []string{"x"}, got.Items)

	require.True(t, a.Remove(ctx, "k"))
	got = kv.Get(ctx, a, "k", doc{Name: "default"})
	require.Equal(t, "default", got.Name)
}

func TestAdapter_GetMissingReturnsDefault(t *testing.T) {
	a := kv.NewAdapter(kv.NewMemoryStore(), nil)
	got := kv.Get(context.Background(), a, "missing", []string{})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestAdapter_CorruptDocumentReturnsDefault(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Write(ctx, "k", []byte("{not json")))

	a := kv.NewAdapter(store, nil)
	got := kv.Get(ctx, a, "k", doc{Name: "fallback"})
	require.Equal(t, "fallback", got.Name)
}

func TestAdapter_StoreFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	store := &mocks.KVStore{}
	store.On("Read", ctx, "k").Return(nil, repository.ErrUnavailable)
	store.On("Write", ctx, "k", mock.Anything).Return(errors.New("disk full"))
	store.On("Delete", ctx, "k").Return(errors.New("disk full"))
	store.On("Clear", ctx).Return(errors.New("disk full"))

	a := kv.NewAdapter(store, nil)
	require.Equal(t, 7, kv.Get(ctx, a, "k", 7))
	require.False(t, a.Set(ctx, "k", 1))
	require.False(t, a.Remove(ctx, "k"))
	require.False(t, a.Clear(ctx))
	store.AssertExpectations(t)
}

func TestAdapter_UnencodableValue(t *testing.T) {
	a := kv.NewAdapter(kv.NewMemoryStore(), nil)
	require.False(t, a.Set(context.Background(), "k", make(chan int)))
}

func TestAdapter_NilStore(t *testing.T) {
	ctx := context.Background()
	a := kv.NewAdapter(nil, nil)
	require.Equal(t, "d", kv.Get(ctx, a, "k", "d"))
	require.False(t, a.Set(ctx, "k", "v"))
	require.False(t, a.Remove(ctx, "k"))
}

func TestAdapter_Clear(t *testing.T) {
	ctx := context.Background()
	a := kv.NewAdapter(kv.NewMemoryStore(), nil)
	require.True(t, a.Set(ctx, kv.KeyTasks, []int{1}))
	require.True(t, a.Set(ctx, kv.KeyUsers, []int{2}))
	require.True(t, a.Clear(ctx))
	require.Nil(t, kv.Get[[]int](ctx, a, kv.KeyTasks, nil))
}
