package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/session"
	"github.com/peopledesk/peopledesk/internal/metrics"
)

// Session guard errors. Unauthenticated and access-denied are distinct so
// the user knows whether to log in or to ask for a different role.
var (
	ErrNotLoggedIn  = errors.New("not logged in, run: peopledesk login <email>")
	ErrAccessDenied = errors.New("access denied: your role does not permit this operation")
)

// app wires the store, metrics, and session manager for one command
// invocation. Commands construct it, run one operation, and close it.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   store.Store
	metrics *metrics.Metrics
	session *session.Manager
}

// newApp loads config, opens the configured store backend, and restores any
// persisted session.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Store.Path = dataPath
	}

	logger := newLogger(cfg.LogLevel)
	st, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	mgr := session.NewManager(st, session.Config{
		Timeout: cfg.Session.Timeout,
		Notify:  func(msg string) { fmt.Fprintln(os.Stderr, msg) },
		Metrics: m,
	}, logger)
	if err := mgr.Restore(); err != nil {
		closeStore(st)
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: st, metrics: m, session: mgr}, nil
}

// Close releases the store backend. Safe to defer unconditionally.
func (a *app) Close() {
	closeStore(a.store)
}

// requireAuth returns the logged-in identity, or ErrNotLoggedIn. An expired
// session reads as logged out.
func (a *app) requireAuth() (*auth.Identity, error) {
	user := a.session.CurrentUser()
	if user == nil {
		a.metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// requireAnyRole returns the logged-in identity when it holds one of the
// given roles. Admin passes every role check.
func (a *app) requireAnyRole(roles ...auth.Role) (*auth.Identity, error) {
	user, err := a.requireAuth()
	if err != nil {
		return nil, err
	}
	if user.Role == auth.RoleAdmin || auth.HasAnyRole(user, roles...) {
		return user, nil
	}
	a.metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
	a.logger.Warn("access denied", "email", user.Email, "role", user.Role)
	return nil, ErrAccessDenied
}

// newLogger builds the process logger writing to stderr at the configured
// level, so command output on stdout stays clean.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// openStore constructs the configured store backend.
func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return store.OpenSQLiteStore(cfg.Store.Path, cfg.Store.Namespace, logger)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewFileStore(cfg.Store.Path, cfg.Store.Namespace, logger), nil
	}
}

// closeStore closes backends that hold resources (sqlite).
func closeStore(st store.Store) {
	if c, ok := st.(io.Closer); ok {
		_ = c.Close()
	}
}
