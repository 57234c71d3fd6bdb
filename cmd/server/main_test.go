package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, filepath.Join(dir, "taskpad-sqlite.log"), logFilePath(dir, config.BackendSQLite))
	require.Equal(t, filepath.Join("logs", "taskpad-redis.log"), logFilePath("logs/", config.BackendRedis))

	file := filepath.Join(dir, "server.log")
	require.Equal(t, file, logFilePath(file, config.BackendMemory))
}

func TestCappedLogKeepsWholeLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	l, err := openCappedLog(path, 100, 60)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	for i := 0; i < 40; i++ {
		_, err := fmt.Fprintf(l, "line-%02d\n", i)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), 100)
	require.True(t, strings.HasSuffix(string(data), "line-39\n"))
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		require.Regexp(t, `^line-\d\d$`, line)
	}
}

func TestCappedLogTrimsOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old entry\n", 20)), 0o644))

	l, err := openCappedLog(path, 100, 50)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.LessOrEqual(t, info.Size(), int64(50))
}

func TestNewLoggerWritesBackendFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Log:   config.LogConfig{Level: "debug", Path: dir},
		Store: config.StoreConfig{Backend: config.BackendMemory},
	}
	logger, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Debug("hello", "store", cfg.Store.Backend)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(filepath.Join(dir, "taskpad-memory.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello store=memory")
}

func TestServeHTTPShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveHTTP(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), srv, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
