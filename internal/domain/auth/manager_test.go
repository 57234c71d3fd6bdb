package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/domain/auth"
	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func setup(api auth.Authenticator, opts ...auth.Option) (*auth.Manager, *clock) {
	c := &clock{t: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]auth.Option{auth.WithClock(c.now)}, opts...)
	return auth.NewManager(api, kv.NewAdapter(kv.NewMemoryStore(), nil), opts...), c
}

func demoAccount() *user.Account {
	acct := user.NewAccount("demo@example.com", time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	return &acct
}

func TestLogin_PersistsSession(t *testing.T) {
	ctx := context.Background()
	api := &mocks.Authenticator{}
	api.On("Login", mock.Anything, "demo@example.com", "demo123").Return(demoAccount(), "token-1", nil)

	mgr, c := setup(api)
	sess, err := mgr.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)
	require.Equal(t, "token-1", sess.Token)
	require.Equal(t, c.t.Add(7*24*time.Hour), sess.ExpiresAt)
	require.False(t, mgr.Loading())

	current, err := mgr.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, current.User.ID)
	api.AssertExpectations(t)
}

func TestLogin_ValidatesBeforeCalling(t *testing.T) {
	api := &mocks.Authenticator{}
	mgr, _ := setup(api)

	_, err := mgr.Login(context.Background(), "demo", "demo123")
	require.ErrorIs(t, err, auth.ErrInvalidInput)
	_, err = mgr.Login(context.Background(), "demo@example.com", "12345")
	require.ErrorIs(t, err, auth.ErrInvalidInput)
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_RemoteFailure(t *testing.T) {
	remote := errors.New("bad gateway")
	api := &mocks.Authenticator{}
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, "", remote)

	mgr, _ := setup(api)
	_, err := mgr.Login(context.Background(), "demo@example.com", "demo123")
	require.ErrorIs(t, err, auth.ErrLoginFailed)
	require.ErrorIs(t, err, remote)

	_, err = mgr.Current(context.Background())
	require.ErrorIs(t, err, auth.ErrNoSession)
}

func TestLogin_TimeoutResetsLoading(t *testing.T) {
	release := make(chan time.Time)
	api := &mocks.Authenticator{}
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).
		WaitUntil(release).
		Return(demoAccount(), "late", nil)

	mgr, _ := setup(api, auth.WithLoginTimeout(20*time.Millisecond))
	_, err := mgr.Login(context.Background(), "demo@example.com", "demo123")
	require.ErrorIs(t, err, auth.ErrLoginTimeout)
	require.False(t, mgr.Loading())
	close(release)

	// The late answer is discarded.
	require.Never(t, func() bool {
		_, err := mgr.Current(context.Background())
		return err == nil
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestCurrent_ExpiredSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := &mocks.Authenticator{}
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(demoAccount(), "t", nil)

	mgr, c := setup(api)
	_, err := mgr.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)

	c.t = c.t.Add(6 * 24 * time.Hour)
	_, err = mgr.Current(ctx)
	require.NoError(t, err)

	c.t = c.t.Add(24 * time.Hour)
	_, err = mgr.Current(ctx)
	require.ErrorIs(t, err, auth.ErrSessionExpired)

	_, err = mgr.Current(ctx)
	require.ErrorIs(t, err, auth.ErrNoSession)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	api := &mocks.Authenticator{}
	api.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(demoAccount(), "t", nil)

	mgr, _ := setup(api)
	_, err := mgr.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)

	require.True(t, mgr.Logout(ctx))
	_, err = mgr.Current(ctx)
	require.ErrorIs(t, err, auth.ErrNoSession)
}
