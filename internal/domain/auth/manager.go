package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/validation"
)

// DefaultLoginTimeout bounds how long Login waits for the remote call.
const DefaultLoginTimeout = 5 * time.Second

// Manager owns the auth session stored under kv.KeyAuthSession.
type Manager struct {
	api     Authenticator
	kv      *kv.Adapter
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger
	loading atomic.Bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source for expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLoginTimeout overrides DefaultLoginTimeout.
func WithLoginTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a session manager.
func NewManager(api Authenticator, adapter *kv.Adapter, opts ...Option) *Manager {
	m := &Manager{
		api:     api,
		kv:      adapter,
		timeout: DefaultLoginTimeout,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type loginResult struct {
	account *user.Account
	token   string
	err     error
}

// Login validates the credentials, calls the remote endpoint and persists a
// session on success. When the call outlives the login timeout Login returns
// ErrLoginTimeout; the call is not cancelled and its eventual result is
// dropped.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if r := validation.Credentials(email, password); !r.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, r.First())
	}

	m.loading.Store(true)
	defer m.loading.Store(false)

	// Buffered so a late answer never blocks the sender.
	done := make(chan loginResult, 1)
	go func() {
		account, token, err := m.api.Login(context.WithoutCancel(ctx), email, password)
		done <- loginResult{account: account, token: token, err: err}
	}()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	var res loginResult
	select {
	case res = <-done:
	case <-timer.C:
		m.logger.Warn("login timed out", "email", email, "timeout", m.timeout)
		return nil, ErrLoginTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if res.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, res.err)
	}
	if res.account == nil {
		return nil, fmt.Errorf("%w: empty response", ErrLoginFailed)
	}

	sess := &Session{
		User:      *res.account,
		Token:     res.token,
		ExpiresAt: m.now().Add(SessionTTL),
	}
	if !m.kv.Set(ctx, kv.KeyAuthSession, sess) {
		m.logger.Warn("session not persisted", "user", sess.User.ID)
	}
	return sess, nil
}

// Current returns the stored session. An expired session is removed and
// reported as ErrSessionExpired.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	sess := kv.Get[*Session](ctx, m.kv, kv.KeyAuthSession, nil)
	if sess == nil {
		return nil, ErrNoSession
	}
	if sess.Expired(m.now()) {
		m.kv.Remove(ctx, kv.KeyAuthSession)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Logout discards the stored session.
func (m *Manager) Logout(ctx context.Context) bool {
	return m.kv.Remove(ctx, kv.KeyAuthSession)
}

// Loading reports whether a login is awaiting its answer.
func (m *Manager) Loading() bool {
	return m.loading.Load()
}
