package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/validation"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 30, 15, 4, 5, 0, time.UTC)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	server := httptest.NewServer(NewServer(opts))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodPost, server.URL+"/api/auth/login", `{"email":"demo@example.com","password":"demo123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Login successful", payload["message"])

	u := payload["user"].(map[string]any)
	require.Equal(t, "Demo", u["name"])
	userID, issued, err := ParseToken(payload["token"].(string))
	require.NoError(t, err)
	require.Equal(t, u["id"], userID)
	require.True(t, issued.Equal(fixedNow))
}

func TestLogin_Validation(t *testing.T) {
	server := newTestServer(t, Options{})

	cases := map[string]string{
		`{"email":"","password":"demo123"}`:             "Email and password are required",
		`{"email":"demo@example.com"}`:                  "Email and password are required",
		`{"email":"demo","password":"demo123"}`:         "Invalid email format",
		`{"email":"demo@example.com","password":"abc"}`: "Password must be at least 6 characters",
	}
	for body, msg := range cases {
		resp, payload := do(t, http.MethodPost, server.URL+"/api/auth/login", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		require.Equal(t, false, payload["success"])
		require.Equal(t, msg, payload["message"], body)
	}

	resp, payload := do(t, http.MethodPost, server.URL+"/api/auth/login", `not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid request body", payload["message"])
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, Options{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/login"},
		{http.MethodDelete, "/api/tasks"},
		{http.MethodPost, "/api/tasks/abc"},
		{http.MethodGet, "/api/ai/analyze"},
	} {
		resp, payload := do(t, tc.method, server.URL+tc.path, "")
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, tc.path)
		require.Equal(t, "Method not allowed", payload["message"])
	}
}

func TestTaskHints(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodGet, server.URL+"/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Use client-side taskStorage for GET operations", payload["message"])

	resp, payload = do(t, http.MethodGet, server.URL+"/api/tasks/123", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Use client-side taskStorage.getTaskById()", payload["message"])
}

func TestCreateTask(t *testing.T) {
	server := newTestServer(t, Options{})

	body := `{"title":"  Fix login bug ","description":"Users cannot log in on mobile devices","tags":["bug","bug"]}`
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/tasks", strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created TaskCreated
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.True(t, created.Success)
	require.Equal(t, "Task created successfully", created.Message)
	require.NotEmpty(t, created.Task.ID)
	require.Equal(t, "Fix login bug", created.Task.Title)
	require.Equal(t, task.PriorityMedium, created.Task.Priority)
	require.Equal(t, task.StatusTodo, created.Task.Status)
	require.Equal(t, []string{"bug"}, created.Task.Tags)
	require.True(t, created.Task.CreatedAt.Equal(fixedNow))
	require.True(t, created.Task.UpdatedAt.Equal(created.Task.CreatedAt))
}

func TestCreateTask_RejectsUnknownPriority(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodPost, server.URL+"/api/tasks", `{"title":"Valid","description":"Long enough text","priority":"extreme"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `unknown priority "extreme"`, payload["message"])
}

// The API must accept and reject exactly what the shared rules do.
func TestValidationSymmetry(t *testing.T) {
	server := newTestServer(t, Options{})

	titles := []string{"", "ab", "  ab  ", "abc", strings.Repeat("t", 200), strings.Repeat("t", 201)}
	descriptions := []string{"", "too short", "      short     ", "just enough", strings.Repeat("d", 2000), strings.Repeat("d", 2001)}

	for _, title := range titles {
		for _, desc := range descriptions {
			payload, err := json.Marshal(map[string]string{"title": title, "description": desc})
			require.NoError(t, err)

			want := validation.Task(title, desc)
			resp, body := do(t, http.MethodPost, server.URL+"/api/tasks", string(payload))
			if want.IsValid {
				require.Equal(t, http.StatusCreated, resp.StatusCode, "title=%q desc=%q", title, desc)
			} else {
				require.Equal(t, http.StatusBadRequest, resp.StatusCode, "title=%q desc=%q", title, desc)
				require.Equal(t, want.First(), body["message"])
			}

			// PUT applies the same rules to the fields present.
			resp, body = do(t, http.MethodPut, server.URL+"/api/tasks/t1", string(payload))
			if want.IsValid {
				require.Equal(t, http.StatusOK, resp.StatusCode)
			} else {
				require.Equal(t, http.StatusBadRequest, resp.StatusCode)
				require.Equal(t, want.First(), body["message"])
			}
		}
	}
}

func TestUpdateTask_EchoesUpdates(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodPut, server.URL+"/api/tasks/t1", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Task updated successfully", payload["message"])
	require.Equal(t, map[string]any{"status": "completed"}, payload["updates"])

	resp, payload = do(t, http.MethodPut, server.URL+"/api/tasks/t1", `{"status":"blocked"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `unknown status "blocked"`, payload["message"])
}

func TestDeleteTask_AlwaysSucceeds(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodDelete, server.URL+"/api/tasks/does-not-exist", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Task deleted successfully", payload["message"])
}

func TestAnalyze_Suggest(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, err := http.Post(server.URL+"/api/ai/analyze", "application/json",
		bytes.NewBufferString(`{"title":"Fix login bug","description":"Users cannot log in on mobile devices, urgent fix needed"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out SuggestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	require.Equal(t, task.PriorityHigh, out.Suggestions.SuggestedPriority)
	require.Contains(t, out.Suggestions.SuggestedTags, "bug")
	require.Equal(t, "2024-03-31", out.Suggestions.SuggestedDeadline)
	require.Equal(t, "1-2 hours", out.Suggestions.EstimatedTime)
}

func TestAnalyze_Format(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodPost, server.URL+"/api/ai/analyze",
		`{"description":"Ship the new dashboard\nAdd charts\nWire filters","action":"format_description"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "## Overview\nShip the new dashboard\n\n## Details\n- Add charts\n- Wire filters", payload["formattedDescription"])
}

func TestAnalyze_OtherActionsSuggest(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodPost, server.URL+"/api/ai/analyze",
		`{"title":"Fix login bug","description":"urgent fix needed","action":"analyze"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, payload["success"])
	suggestions, ok := payload["suggestions"].(map[string]any)
	require.True(t, ok, "expected suggestions, got %v", payload)
	require.Equal(t, "high", suggestions["suggestedPriority"])
}

func TestAnalyze_Errors(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, payload := do(t, http.MethodPost, server.URL+"/api/ai/analyze", `{"title":"x"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Description is required", payload["message"])

	resp, _ = do(t, http.MethodPost, server.URL+"/api/ai/analyze", `{`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	server := newTestServer(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 2})

	for i := 0; i < 2; i++ {
		resp, _ := do(t, http.MethodGet, server.URL+"/api/tasks", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, payload := do(t, http.MethodGet, server.URL+"/api/tasks", "")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "Rate limit exceeded", payload["message"])

	// Health is not limited.
	hr, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	hr.Body.Close()
	require.Equal(t, http.StatusOK, hr.StatusCode)
}

func TestCORS(t *testing.T) {
	server := newTestServer(t, Options{AllowedOrigins: []string{"http://localhost:3000"}})

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMCPMount(t *testing.T) {
	mcp := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	server := newTestServer(t, Options{MCP: mcp})

	resp, err := http.Post(server.URL+"/mcp", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}
