package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	refresher  *usecase.Refresher
	handler    xhttp.Handler
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	refresher *usecase.Refresher,
	handler xhttp.Handler,
	c cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    l,
		refresher: refresher,
		handler:   handler,
		cache:     c,
	}
}

// Run starts the application and blocks until interrupted. The first refresh
// cycle completes before the HTTP server accepts traffic, so the dashboard
// never serves an empty loading state.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.refresher.Start(ctx); err != nil {
		a.logger.Error("refresher start error", applogger.Error(err))
		return err
	}
	a.logger.Info("refresher started",
		applogger.String("upstream", a.cfg.Upstream.BaseURL),
		applogger.Duration("interval", a.cfg.Refresh.Interval))

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
