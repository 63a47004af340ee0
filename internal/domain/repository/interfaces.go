package repository

import (
	"context"

	"StockPulse/internal/domain/models"
)

// DashboardGateway is the resilient fetch boundary to the upstream analytics
// backend. The four data operations never fail: on transport, status, parse,
// or shape errors they resolve to a schema-valid fallback value and report
// what happened through the returned FetchStatus.
type DashboardGateway interface {
	FetchLatest(ctx context.Context) (*models.LatestBundle, models.FetchStatus)
	FetchHistorical(ctx context.Context, days int) ([]models.StockSnapshot, models.FetchStatus)
	FetchRecommendations(ctx context.Context) ([]models.RecommendationRecord, models.FetchStatus)
	FetchMetrics(ctx context.Context) (*models.PerformanceMetrics, models.FetchStatus)
	Health(ctx context.Context) error // upstream liveness probe, does fail
}

type Metrics interface {
	RecordFetch(endpoint, source string, seconds float64)
	RecordCycle(trigger string, seconds float64)
	RecordViewState(state string)
	RecordError(kind string)
}
