package di

import (
	"fmt"

	"StockPulse/internal/domain/repository"
	"StockPulse/internal/gateway"
	"StockPulse/internal/handler/api"
	"StockPulse/internal/tableview"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	"StockPulse/pkg/config"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the last-known-good cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	case "memory", "":
		return cache.NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideGateway creates the upstream data gateway.
func ProvideGateway(cfg *config.Config, c cache.Service, l *logger.Logger, m repository.Metrics) repository.DashboardGateway {
	return gateway.New(cfg.Upstream.BaseURL, c, l, m,
		gateway.WithTimeout(cfg.Upstream.Timeout),
		gateway.WithLastGoodTTL(cfg.Cache.TTL),
	)
}

// ProvideTableEngine creates the table state engine.
func ProvideTableEngine() *tableview.Engine {
	return tableview.NewEngine()
}

// ProvideBoard creates the view model board.
func ProvideBoard(m repository.Metrics) *usecase.Board {
	return usecase.NewBoard(m)
}

// ProvideRefresher creates the refresh scheduler use case.
func ProvideRefresher(
	gw repository.DashboardGateway,
	board *usecase.Board,
	table *tableview.Engine,
	l *logger.Logger,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.Refresher {
	return usecase.NewRefresher(gw, board, table, l, m, cfg.Refresh.Interval, cfg.Upstream.HistoricalDays)
}

// ProvideHandler creates the dashboard HTTP handler.
func ProvideHandler(l *logger.Logger, r *usecase.Refresher, gw repository.DashboardGateway) *api.DashboardEchoHandler {
	return api.NewDashboardEchoHandler(l, r, gw)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	refresher *usecase.Refresher,
	handler *api.DashboardEchoHandler,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, refresher, handler, c)
}
