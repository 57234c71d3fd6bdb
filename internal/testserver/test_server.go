package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/client"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/mcp"
	"github.com/rpggio/taskpad/internal/sqlite"
	"github.com/rpggio/taskpad/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is the HTTP process wired like cmd/server, backed by a
// per-test in-memory SQLite database.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	// Tasks is the store the MCP tools read.
	Tasks *task.Store
	Now   func() time.Time
}

// New starts a server. A nil now uses the wall clock.
func New(t *testing.T, now func() time.Time) *TestServer {
	t.Helper()
	if now == nil {
		now = time.Now
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	tasks := task.NewStore(kv.NewAdapter(sqlite.NewKVStore(db), nil), nil, task.WithClock(now))
	mcpServer := mcp.NewServer(mcp.Config{
		Tasks:         tasks,
		TransportMode: mcp.TransportHTTP,
		Now:           now,
	})

	server := httptest.NewServer(transport.NewServer(transport.Options{
		Now: now,
		MCP: mcp.NewHTTPHandler(mcpServer),
	}))

	ts := &TestServer{
		Server: server,
		DB:     db,
		Tasks:  tasks,
		Now:    now,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// Client returns an API client for the server.
func (ts *TestServer) Client(opts ...client.Option) *client.Client {
	return client.New(ts.Server.URL, opts...)
}

// MCPEndpoint is the streamable HTTP MCP URL.
func (ts *TestServer) MCPEndpoint() string {
	return ts.Server.URL + "/mcp"
}
