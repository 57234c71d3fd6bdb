package mocks

import (
	"context"

	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// KVStore is a mock for repository.KVStore.
type KVStore struct {
	mock.Mock
}

func (m *KVStore) Read(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *KVStore) Write(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *KVStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Authenticator is a mock for auth.Authenticator.
type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) Login(ctx context.Context, email, password string) (*user.Account, string, error) {
	args := m.Called(ctx, email, password)
	if acct, ok := args.Get(0).(*user.Account); ok {
		return acct, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}
