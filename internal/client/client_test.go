package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/client"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/transport"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 30, 15, 4, 5, 0, time.UTC)

func router() http.Handler {
	return transport.NewServer(transport.Options{Now: func() time.Time { return fixedNow }})
}

func clients(t *testing.T) map[string]*client.Client {
	t.Helper()
	server := httptest.NewServer(router())
	t.Cleanup(server.Close)
	return map[string]*client.Client{
		"http":       client.New(server.URL),
		"in-process": client.NewLocal(router()),
	}
}

func TestClient_Login(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			acct, token, err := c.Login(context.Background(), "demo@example.com", "demo123")
			require.NoError(t, err)
			require.Equal(t, "Demo", acct.Name)
			userID, _, err := transport.ParseToken(token)
			require.NoError(t, err)
			require.Equal(t, acct.ID, userID)
		})
	}
}

func TestClient_LoginRejected(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := c.Login(context.Background(), "demo@example.com", "123")
			var apiErr *client.APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, http.StatusBadRequest, apiErr.Status)
			require.Equal(t, "Password must be at least 6 characters", apiErr.Message)
		})
	}
}

func TestClient_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			created, err := c.CreateTask(ctx, task.CreateInput{Title: "Write docs", Description: "Document the public API"})
			require.NoError(t, err)
			require.NotEmpty(t, created.ID)
			require.True(t, created.CreatedAt.Equal(fixedNow))

			status := task.StatusCompleted
			accepted, err := c.UpdateTask(ctx, created.ID, task.Patch{Status: &status})
			require.NoError(t, err)
			require.NotNil(t, accepted.Status)
			require.Equal(t, task.StatusCompleted, *accepted.Status)
			require.Nil(t, accepted.Title)

			require.NoError(t, c.DeleteTask(ctx, created.ID))
		})
	}
}

func TestClient_Analyze(t *testing.T) {
	ctx := context.Background()
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			s, err := c.Suggest(ctx, "Fix login bug", "Users cannot log in on mobile devices, urgent fix needed")
			require.NoError(t, err)
			require.Equal(t, task.PriorityHigh, s.SuggestedPriority)
			require.Equal(t, "2024-03-31", s.SuggestedDeadline)

			ai := s.AISuggestions()
			require.Equal(t, "2024-03-31", *ai.Deadline)

			formatted, err := c.FormatDescription(ctx, "- already\n- structured")
			require.NoError(t, err)
			require.Equal(t, "- already\n\n- structured", formatted)

			_, err = c.FormatDescription(ctx, "")
			var apiErr *client.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, "Description is required", apiErr.Message)
		})
	}
}

func TestClient_SendsToken(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(server.Close)

	c := client.New(server.URL, client.WithToken(func(context.Context) string { return "abc" }))
	require.NoError(t, c.DeleteTask(context.Background(), "t1"))
	require.Equal(t, "Bearer abc", got)
}

func TestClient_Health(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Health(context.Background()))
		})
	}
}

func TestClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := client.NewLocal(router()).Login(ctx, "demo@example.com", "demo123")
	require.ErrorIs(t, err, context.Canceled)
}
