// Package app wires configuration, adapters and transport into the
// running widget.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
	"github.com/heartmarshall/wordlookup/internal/transport/rest"
	"github.com/heartmarshall/wordlookup/internal/widget"
	"github.com/heartmarshall/wordlookup/migrations"
)

// recordTimeout bounds one history write.
const recordTimeout = 5 * time.Second

// ErrHistoryDisabled is returned by history operations when no database is configured.
var ErrHistoryDisabled = errors.New("lookup history disabled: database.dsn is empty")

// App holds the long-lived dependencies shared by the CLI commands.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	provider *freedict.Provider
	pool     *pgxpool.Pool
	history  *history.Repo
}

// New builds the dictionary provider and, when a DSN is configured, the
// history database pool. Close releases the pool.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger,
		provider: freedict.NewProvider(logger,
			freedict.WithBaseURL(cfg.Dictionary.BaseURL),
			freedict.WithTimeout(cfg.Dictionary.HTTPTimeout),
			freedict.WithFallbackMessage(cfg.Dictionary.FallbackMessage),
		),
	}

	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect history database: %w", err)
		}
		a.pool = pool
		a.history = history.New(pool)
	}

	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// History returns the history repository or ErrHistoryDisabled.
func (a *App) History() (*history.Repo, error) {
	if a.history == nil {
		return nil, ErrHistoryDisabled
	}
	return a.history, nil
}

// NewController builds a search controller driving surface.
func (a *App) NewController(surface widget.Surface) *widget.Controller {
	opts := []widget.Option{
		widget.WithDelay(a.cfg.Widget.SearchDelay),
		widget.WithFallbackMessage(a.cfg.Dictionary.FallbackMessage),
	}
	if a.history != nil {
		opts = append(opts, widget.WithRecorder(newTimedRecorder(a.history, recordTimeout)))
	}
	return widget.NewController(a.log, a.provider, surface, opts...)
}

// Migrate applies the embedded history migrations.
func (a *App) Migrate(ctx context.Context) ([]postgres.MigrationResult, error) {
	if !a.cfg.Database.Enabled() {
		return nil, ErrHistoryDisabled
	}
	return postgres.Migrate(ctx, a.cfg.Database.DSN, migrations.FS)
}

// Handler assembles the HTTP handler of the widget server. The returned
// stop func releases background resources.
func (a *App) Handler() (http.Handler, func()) {
	sessions := rest.NewSessionStore(a.NewController,
		a.cfg.Widget.CookieName, a.cfg.Widget.MaxSessions, a.cfg.Widget.SessionTTL)

	var pinger interface {
		Ping(ctx context.Context) error
	}
	if a.pool != nil {
		pinger = a.pool
	}

	limiter := middleware.NewRateLimiter(a.cfg.RateLimit.CleanupInterval)

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:          a.log,
		Widget:          rest.NewWidgetHandler(a.log, sessions),
		Health:          rest.NewHealthHandler(pinger, sessions, BuildVersion()),
		Limiter:         limiter,
		SearchPerMinute: a.cfg.RateLimit.SearchPerMinute,
		CORS:            a.cfg.CORS,
	})
	return handler, limiter.Stop
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	handler, stop := a.Handler()
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting http server",
			slog.String("addr", srv.Addr),
			slog.String("version", BuildVersion()),
			slog.Bool("history", a.history != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
