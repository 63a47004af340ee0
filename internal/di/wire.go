//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Upstream gateway
		ProvideGateway,

		// Use cases
		ProvideTableEngine,
		ProvideBoard,
		ProvideRefresher,

		// HTTP handler
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
