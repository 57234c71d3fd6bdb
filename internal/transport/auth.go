package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized indicates a malformed bearer token.
var ErrUnauthorized = errors.New("unauthorized")

type userKey struct{}

// IssueToken encodes userID and the issue time as base64 "userId:unixMillis".
// The token carries no signature.
func IssueToken(userID string, issued time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%d", userID, issued.UnixMilli())))
}

// ParseToken decodes a token made by IssueToken.
func ParseToken(token string) (string, time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	s := string(raw)
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: missing separator", ErrUnauthorized)
	}
	ms, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: bad timestamp", ErrUnauthorized)
	}
	return s[:i], time.UnixMilli(ms), nil
}

// UserFromContext returns the user ID carried by the request token, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey{}).(string)
	return userID, ok
}

// IdentityMiddleware decodes an optional bearer token into the request
// context. Requests without a token pass through; malformed tokens are
// rejected.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, _, err := ParseToken(token)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "Invalid bearer token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
