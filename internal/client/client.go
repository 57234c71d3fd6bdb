// Package client calls the mock task API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/transport"
)

// LocalBaseURL addresses an in-process router.
const LocalBaseURL = "http://taskpad.local"

// APIError is a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client is a mock API client.
type Client struct {
	baseURL string
	http    *http.Client
	token   func(ctx context.Context) string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken supplies the bearer token sent with each request.
func WithToken(token func(ctx context.Context) string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewLocal creates a client that serves requests with h in-process.
func NewLocal(h http.Handler, opts ...Option) *Client {
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: InProcess(h)})}, opts...)
	return New(LocalBaseURL, opts...)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// InProcess returns a RoundTripper that hands requests straight to h.
func InProcess(h http.Handler) http.RoundTripper {
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if err := r.Context().Err(); err != nil {
			return nil, err
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		resp := rec.Result()
		resp.Request = r
		return resp, nil
	})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure transport.Failure
		_ = json.Unmarshal(data, &failure)
		return &APIError{Status: resp.StatusCode, Message: failure.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Login implements auth.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (*user.Account, string, error) {
	var out transport.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", transport.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

// CreateTask asks the API to construct a task.
func (c *Client) CreateTask(ctx context.Context, in task.CreateInput) (*task.Task, error) {
	var out transport.TaskCreated
	if err := c.do(ctx, http.MethodPost, "/api/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

// UpdateTask submits a patch and returns the updates the API accepted.
func (c *Client) UpdateTask(ctx context.Context, id string, p task.Patch) (task.Patch, error) {
	var out transport.TaskUpdated
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), p, &out); err != nil {
		return task.Patch{}, err
	}
	var accepted task.Patch
	if len(out.Updates) > 0 {
		if err := json.Unmarshal(out.Updates, &accepted); err != nil {
			return task.Patch{}, fmt.Errorf("decoding updates: %w", err)
		}
	}
	return accepted, nil
}

// DeleteTask notifies the API of a deletion.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

type analyzeBody struct {
	Title       string                  `json:"title,omitempty"`
	Description string                  `json:"description"`
	Action      transport.AnalyzeAction `json:"action,omitempty"`
}

// Suggest runs the classifier on the API side.
func (c *Client) Suggest(ctx context.Context, title, description string) (*transport.Suggestions, error) {
	var out transport.SuggestResponse
	body := analyzeBody{Title: title, Description: description, Action: transport.ActionSuggest}
	if err := c.do(ctx, http.MethodPost, "/api/ai/analyze", body, &out); err != nil {
		return nil, err
	}
	return &out.Suggestions, nil
}

// FormatDescription asks the API to restructure a description.
func (c *Client) FormatDescription(ctx context.Context, description string) (string, error) {
	var out transport.FormatResponse
	body := analyzeBody{Description: description, Action: transport.ActionFormat}
	if err := c.do(ctx, http.MethodPost, "/api/ai/analyze", body, &out); err != nil {
		return "", err
	}
	return out.FormattedDescription, nil
}

// Health checks the server.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}
