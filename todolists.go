package todolists

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/todolists/internal/config"
	"github.com/aretw0/todolists/internal/logging"
	"github.com/aretw0/todolists/internal/metrics"
	"github.com/aretw0/todolists/pkg/adapters/file"
	httpAdapter "github.com/aretw0/todolists/pkg/adapters/http"
	"github.com/aretw0/todolists/pkg/adapters/memory"
	"github.com/aretw0/todolists/pkg/adapters/redis"
	"github.com/aretw0/todolists/pkg/persistence/middleware"
	"github.com/aretw0/todolists/pkg/ports"
	"github.com/aretw0/todolists/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the assembled application: store, session manager and web server.
type App struct {
	cfg      *config.Config
	store    ports.StateStore
	sessions *session.Manager
	server   *httpAdapter.Server
	logger   *slog.Logger
	registry *prometheus.Registry
	closers  []func() error
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the structured logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithRegistry enables Prometheus metrics on the given registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}

// New wires the application described by cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	store, locker, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.store = store

	managerOpts := []session.Option{session.WithLogger(a.logger)}
	if locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(locker))
	}
	a.sessions = session.NewManager(store, managerOpts...)

	serverOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(a.logger),
		httpAdapter.WithCookieTTL(cfg.SessionTTL),
	}
	if cfg.SessionSecret != "" {
		serverOpts = append(serverOpts, httpAdapter.WithSessionSecret([]byte(cfg.SessionSecret)))
	} else {
		a.logger.Warn("No session_secret configured, sessions will not survive a restart")
	}
	if a.registry != nil {
		serverOpts = append(serverOpts, httpAdapter.WithMetrics(metrics.New(a.registry)))
	}

	a.server, err = httpAdapter.NewServer(a.sessions, serverOpts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// OpenStore returns the configured session store, without the web layer.
// Used by operator tooling that inspects sessions offline.
func OpenStore(cfg *config.Config) (ports.StateStore, func() error, error) {
	a := &App{cfg: cfg, logger: logging.NewNop()}
	store, _, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	return store, a.Close, nil
}

func (a *App) openStore() (ports.StateStore, ports.DistributedLocker, error) {
	var (
		store  ports.StateStore
		locker ports.DistributedLocker
	)
	switch a.cfg.Store {
	case config.StoreMemory:
		store = memory.NewStore(memory.WithTTL(a.cfg.SessionTTL))
	case config.StoreFile:
		store = file.New(a.cfg.StorePath, file.WithTTL(a.cfg.SessionTTL))
	case config.StoreRedis:
		rs := redis.New(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB,
			redis.WithPrefix(a.cfg.RedisPrefix),
			redis.WithTTL(a.cfg.SessionTTL),
		)
		a.closers = append(a.closers, rs.Close)
		store = rs
		locker = redis.NewLocker(rs.Client(), rs.Prefix())
	default:
		return nil, nil, fmt.Errorf("unknown store %q", a.cfg.Store)
	}

	active, fallback, err := a.cfg.EncryptionKeys()
	if err != nil {
		return nil, nil, err
	}
	if active != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})
		if err != nil {
			return nil, nil, err
		}
		store = middleware.Chain(store, enc)
	}

	a.logger.Info("Session store ready", "store", a.cfg.Store, "encrypted", active != nil)
	return store, locker, nil
}

// Handler returns the HTTP handler serving the application.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
