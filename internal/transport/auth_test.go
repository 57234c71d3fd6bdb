package transport

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	issued := time.UnixMilli(1717243200123)
	token := IssueToken("user-1", issued)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Equal(t, "user-1:1717243200123", string(raw))

	userID, at, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
	require.True(t, at.Equal(issued))
}

func TestParseToken_Invalid(t *testing.T) {
	for _, token := range []string{"%%%", base64.StdEncoding.EncodeToString([]byte("nocolon")), base64.StdEncoding.EncodeToString([]byte("id:abc"))} {
		_, _, err := ParseToken(token)
		require.ErrorIs(t, err, ErrUnauthorized, token)
	}
}

func TestIdentityMiddleware(t *testing.T) {
	var seen string
	handler := IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+IssueToken("user-7", time.Now()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-7", seen)

	seen = ""
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, seen)
}

func TestIdentityMiddleware_Invalid(t *testing.T) {
	handler := IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-base64!")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
