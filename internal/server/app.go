// Package server initializes and runs the accountdesk application:
// configuration, the storage backend, the account lifecycle service, and
// the HTTP server, with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/accountdesk/internal/filex"
	"github.com/dmitrijs2005/accountdesk/internal/logging"
	"github.com/dmitrijs2005/accountdesk/internal/server/config"
	"github.com/dmitrijs2005/accountdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/accountdesk/internal/server/services"
	"github.com/dmitrijs2005/accountdesk/internal/server/web"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	accounts *services.AccountService
	web      *web.Server
}

// NewApp wires every component from the given config.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	if cfg.StoreBackend == config.StoreBackendFile && cfg.UserFilePath == "" {
		dir, err := filex.EnsureSubDir("data")
		if err != nil {
			return nil, fmt.Errorf("data dir init error: %w", err)
		}
		cfg.UserFilePath = filepath.Join(dir, "users.json")
	}

	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	accounts := services.NewAccountService(repos.Users(), cfg)

	ws, err := web.NewServer(cfg, logger, accounts)
	if err != nil {
		return nil, fmt.Errorf("web server init error: %w", err)
	}

	return &App{config: cfg, logger: logger, repos: repos, accounts: accounts, web: ws}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until an OS signal arrives, then shuts everything down.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.StoreBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.web.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
}
