package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/taskpad/internal/config"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/mcp"
	"github.com/rpggio/taskpad/internal/storage"
	"github.com/rpggio/taskpad/internal/transport"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server stopped", "store", cfg.Store.Backend, "error", err)
	}
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger writes to stdout, or stderr in stdio mode where stdout carries
// the protocol, unless a log path is configured.
func newLogger(cfg config.Config) (*slog.Logger, func() error, error) {
	w := io.Writer(os.Stdout)
	if cfg.Transport.Mode == mcp.TransportStdio {
		w = os.Stderr
	}
	closeLog := func() error { return nil }
	if cfg.Log.Path != "" {
		f, err := openCappedLog(logFilePath(cfg.Log.Path, cfg.Store.Backend), logMaxBytes, logTrimBytes)
		if err != nil {
			return nil, nil, err
		}
		w, closeLog = f, f.Close
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	return logger, closeLog, nil
}

// run serves until ctx is canceled or the transport fails.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, closeStore, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	logger = logger.With("store", cfg.Store.Backend)
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	tasks := task.NewStore(kv.NewAdapter(store, logger), logger)
	mcpServer := mcp.NewServer(mcp.Config{
		Tasks:         tasks,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == mcp.TransportStdio {
		logger.Info("serving stdio")
		err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
		if ctx.Err() != nil {
			logger.Info("shutting down")
			return nil
		}
		return err
	}

	router := transport.NewServer(transport.Options{
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MCP:            mcp.NewHTTPHandler(mcpServer),
	})
	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
	}
	return serveHTTP(ctx, logger, &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}, ln)
}

// serveHTTP serves on ln and shuts srv down gracefully once ctx is done.
func serveHTTP(ctx context.Context, logger *slog.Logger, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	logger.Info("server listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
