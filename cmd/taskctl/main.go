package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rpggio/taskpad/internal/app"
	"github.com/rpggio/taskpad/internal/client"
	"github.com/rpggio/taskpad/internal/config"
	"github.com/rpggio/taskpad/internal/domain/auth"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/repository"
	"github.com/rpggio/taskpad/internal/storage"
	"github.com/rpggio/taskpad/internal/transport"
	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

// annotationPublic marks commands that run without a session.
const annotationPublic = "public"

// options are test seams. Zero values mean configuration and the wall clock.
type options struct {
	store repository.KVStore
	now   func() time.Time
}

// cli carries state shared by every command in one invocation.
type cli struct {
	opts options

	flagJSON    bool
	flagNoColor bool
	flagVerbose bool

	cfg     config.Config
	app     *app.App
	now     func() time.Time
	logger  *slog.Logger
	closeFn func() error
}

func main() {
	if err := newRootCmd(options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts options) *cobra.Command {
	c := &cli{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "taskctl",
		Short: "Track tasks, get suggestions and generate insight reports",
		Long: `taskpad keeps tasks in a local store, classifies drafts with keyword
analysis and writes markdown or PDF insight reports for a date range.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			if cmd.Annotations[annotationPublic] == "true" {
				return nil
			}
			return c.requireSession(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&c.flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&c.flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&c.flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(c.loginCmd())
	rootCmd.AddCommand(c.logoutCmd())
	rootCmd.AddCommand(c.whoamiCmd())
	rootCmd.AddCommand(c.taskCmd())
	rootCmd.AddCommand(c.statsCmd())
	rootCmd.AddCommand(c.timelineCmd())
	rootCmd.AddCommand(c.usersCmd())
	rootCmd.AddCommand(c.reportCmd())
	rootCmd.AddCommand(c.formatCmd())
	rootCmd.AddCommand(c.prefsCmd())

	return rootCmd
}

func public(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationPublic] = "true"
	return cmd
}

// setup builds the application from configuration.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	level := slog.LevelWarn
	if c.flagVerbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	c.now = time.Now
	if c.opts.now != nil {
		c.now = c.opts.now
	}

	store := c.opts.store
	c.closeFn = func() error { return nil }
	if store == nil {
		store, c.closeFn, err = storage.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
		}
	}
	adapter := kv.NewAdapter(store, c.logger)

	var mgr *auth.Manager
	token := client.WithToken(func(ctx context.Context) string {
		sess, err := mgr.Current(ctx)
		if err != nil {
			return ""
		}
		return sess.Token
	})
	var api *client.Client
	if cfg.API.BaseURL != "" {
		api = client.New(cfg.API.BaseURL, token)
	} else {
		api = client.NewLocal(transport.NewServer(transport.Options{Logger: c.logger, Now: c.now}), token)
	}
	mgr = auth.NewManager(api, adapter,
		auth.WithClock(c.now),
		auth.WithLoginTimeout(cfg.API.LoginTimeout),
		auth.WithLogger(c.logger),
	)

	c.app = app.New(app.Deps{
		KV:     adapter,
		Tasks:  task.NewStore(adapter, c.logger, task.WithClock(c.now)),
		Users:  user.NewDirectory(adapter, c.now, c.logger),
		Auth:   mgr,
		API:    api,
		Now:    c.now,
		Logger: c.logger,
	})

	prefs := c.app.Preferences(cmd.Context())
	ui.SetEnabled(prefs.Color && !c.flagNoColor && !c.flagJSON)
	return nil
}

func (c *cli) close() error {
	if c.closeFn == nil {
		return nil
	}
	err := c.closeFn()
	c.closeFn = nil
	return err
}

func (c *cli) requireSession(ctx context.Context) error {
	_, err := c.app.Session(ctx)
	switch {
	case errors.Is(err, auth.ErrNoSession):
		return errors.New("not logged in: run taskctl login")
	case errors.Is(err, auth.ErrSessionExpired):
		return errors.New("session expired: run taskctl login")
	default:
		return err
	}
}

func (c *cli) outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
