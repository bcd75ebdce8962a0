// Package cli is the interactive shell over the client services: a REPL with
// auth, analysis, dashboard and purchase commands.
package cli

import (
	"bufio"
	"context"
	"os"
	"sync"
	"time"

	"github.com/newsscope/newsscope/internal/client/api"
	"github.com/newsscope/newsscope/internal/client/checkout"
	"github.com/newsscope/newsscope/internal/client/config"
	"github.com/newsscope/newsscope/internal/client/dashboard"
	"github.com/newsscope/newsscope/internal/client/session"
	"github.com/newsscope/newsscope/internal/client/store"
	"github.com/newsscope/newsscope/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	api       *api.HTTPClient
	session   *session.Manager
	dashboard *dashboard.Aggregator
	store     *store.Store
	loader    *checkout.ScriptLoader
	widget    checkout.Widget
	reader    *bufio.Reader

	// mode is written by the health watcher goroutine and read by the REPL.
	modeMu sync.Mutex
	mode   Mode
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	// Seed the cookie jar from the last run so an existing session survives
	// a restart. Best effort.
	if cookies, err := st.Metadata.LoadSessionCookies(ctx); err == nil && len(cookies) > 0 {
		apiClient.RestoreSessionCookies(cookies)
	}

	loader := checkout.NewScriptLoader(cfg.ScriptURL, nil)

	return &App{
		config:    cfg,
		log:       log,
		api:       apiClient,
		session:   session.NewManager(apiClient, log),
		dashboard: dashboard.NewAggregator(apiClient, st.Analyses, log),
		store:     st,
		loader:    loader,
		widget:    checkout.NewBrowserWidget(loader, cfg.CallbackAddr, log),
		reader:    bufio.NewReader(os.Stdin),
		mode:      ModeOnline,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()

	// Initial session probe; an absent session is not an error.
	a.session.Bootstrap(ctx)

	go a.startHealthWatcher(ctx, a.config.HealthCheckInterval)

	a.root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) startHealthWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Health(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// persistSession writes the current cookies to the local store so the next
// run starts logged in. Best effort.
func (a *App) persistSession(ctx context.Context) {
	if err := a.store.Metadata.SaveSessionCookies(ctx, a.api.SessionCookies()); err != nil {
		a.log.Warn(ctx, "saving session failed", "error", err)
	}
}

func (a *App) clearPersistedSession(ctx context.Context) {
	if err := a.store.Metadata.SaveSessionCookies(ctx, nil); err != nil {
		a.log.Warn(ctx, "clearing saved session failed", "error", err)
	}
}
