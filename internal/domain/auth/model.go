package auth

import (
	"context"
	"time"

	"github.com/rpggio/taskpad/internal/domain/user"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Session is the persisted sign-in state.
type Session struct {
	User      user.Account `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Authenticator performs the remote login call.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*user.Account, string, error)
}
