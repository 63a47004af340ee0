package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/cache"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"
)

// Client fetches dashboard data from the upstream analytics backend. The four
// data operations never fail: any transport, status, parse, or shape error is
// swallowed into a fallback value and reported via the FetchStatus tag. No
// retry, no backoff; calls are independent.
type Client struct {
	baseURL string
	http    *xhttp.Client
	cache   cache.Service
	lkgTTL  time.Duration
	logger  *xlogger.Logger
	metrics domrepo.Metrics
}

// Option configures Client.
type Option func(*Client)

// New creates a gateway client for the given upstream base URL.
func New(baseURL string, c cache.Service, l *xlogger.Logger, m domrepo.Metrics, opts ...Option) *Client {
	g := &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		cache:   c,
		logger:  l,
		metrics: m,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Client) {
		g.http = xhttp.NewClient(xhttp.WithTimeout(timeout))
	}
}

// WithLastGoodTTL bounds how long a last-known-good payload may serve as
// fallback. Zero keeps it until overwritten.
func WithLastGoodTTL(ttl time.Duration) Option {
	return func(g *Client) {
		g.lkgTTL = ttl
	}
}

var _ domrepo.DashboardGateway = (*Client)(nil)

func (g *Client) FetchLatest(ctx context.Context) (*models.LatestBundle, models.FetchStatus) {
	body, elapsed, err := g.get(ctx, "/api/latest", nil)
	if err == nil {
		var bundle *models.LatestBundle
		var warns []string
		if bundle, warns, err = normalizeLatest(body); err == nil {
			g.storeGood(ctx, models.EndpointLatest, bundle)
			return bundle, g.liveStatus(models.EndpointLatest, warns, elapsed)
		}
	}
	return fallback(g, ctx, models.EndpointLatest, err, elapsed, fallbackLatest)
}

func (g *Client) FetchHistorical(ctx context.Context, days int) ([]models.StockSnapshot, models.FetchStatus) {
	if days <= 0 {
		days = 30
	}
	q := map[string][]string{"days": {strconv.Itoa(days)}}

	body, elapsed, err := g.get(ctx, "/api/historical", q)
	if err == nil {
		var rows []models.StockSnapshot
		var warns []string
		if rows, warns, err = normalizeHistorical(body); err == nil {
			g.storeGood(ctx, models.EndpointHistorical, rows)
			return rows, g.liveStatus(models.EndpointHistorical, warns, elapsed)
		}
	}
	return fallback(g, ctx, models.EndpointHistorical, err, elapsed, fallbackHistorical)
}

func (g *Client) FetchRecommendations(ctx context.Context) ([]models.RecommendationRecord, models.FetchStatus) {
	body, elapsed, err := g.get(ctx, "/api/recommendations", nil)
	if err == nil {
		var rows []models.RecommendationRecord
		var warns []string
		if rows, warns, err = normalizeRecommendations(body); err == nil {
			g.storeGood(ctx, models.EndpointRecommendations, rows)
			return rows, g.liveStatus(models.EndpointRecommendations, warns, elapsed)
		}
	}
	return fallback(g, ctx, models.EndpointRecommendations, err, elapsed, fallbackRecommendations)
}

func (g *Client) FetchMetrics(ctx context.Context) (*models.PerformanceMetrics, models.FetchStatus) {
	body, elapsed, err := g.get(ctx, "/api/metrics", nil)
	if err == nil {
		var m *models.PerformanceMetrics
		var warns []string
		if m, warns, err = normalizeMetrics(body); err == nil {
			g.storeGood(ctx, models.EndpointMetrics, m)
			return m, g.liveStatus(models.EndpointMetrics, warns, elapsed)
		}
	}
	return fallback(g, ctx, models.EndpointMetrics, err, elapsed, fallbackMetrics)
}

// Health probes upstream liveness. Unlike the data operations it does fail.
func (g *Client) Health(ctx context.Context) error {
	_, _, err := g.get(ctx, "/api/health", nil)
	if err != nil {
		return fmt.Errorf("upstream health: %w", err)
	}
	return nil
}

func (g *Client) get(ctx context.Context, path string, query map[string][]string) ([]byte, time.Duration, error) {
	start := time.Now()
	body, err := g.http.SendAndRead(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         g.baseURL + path,
		QueryParams: query,
	})
	return body, time.Since(start), err
}

func (g *Client) liveStatus(endpoint string, warns []string, elapsed time.Duration) models.FetchStatus {
	g.metrics.RecordFetch(endpoint, string(models.SourceLive), elapsed.Seconds())
	if len(warns) > 0 {
		g.logger.Warn("normalized upstream payload",
			xlogger.String("endpoint", endpoint),
			xlogger.Strings("warnings", warns),
		)
	}
	return models.FetchStatus{
		Endpoint: endpoint,
		Source:   models.SourceLive,
		Warnings: warns,
	}
}

// storeGood keeps the normalized value as the last-known-good fallback.
func (g *Client) storeGood(ctx context.Context, endpoint string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, lkgKey(endpoint), b, g.lkgTTL); err != nil {
		g.logger.Warn("last-known-good store failed",
			xlogger.String("endpoint", endpoint),
			xlogger.Error(err),
		)
	}
}

// fallback resolves a failed fetch: last-known-good payload if one is cached,
// otherwise the static constant for the endpoint.
func fallback[T any](g *Client, ctx context.Context, endpoint string, err error, elapsed time.Duration, static func() T) (T, models.FetchStatus) {
	kind := failureKind(err)
	reason := fmt.Sprintf("%s failure: %v", kind, err)
	g.metrics.RecordError("fetch_" + kind)
	g.logger.Warn("fetch failed, serving fallback",
		xlogger.String("endpoint", endpoint),
		xlogger.String("kind", kind),
		xlogger.Error(err),
	)

	if b, cerr := g.cache.Get(ctx, lkgKey(endpoint)); cerr == nil {
		var v T
		if jerr := json.Unmarshal(b, &v); jerr == nil {
			g.metrics.RecordFetch(endpoint, string(models.SourceCached), elapsed.Seconds())
			return v, models.FetchStatus{
				Endpoint: endpoint,
				Source:   models.SourceCached,
				Reason:   reason,
			}
		}
	}

	g.metrics.RecordFetch(endpoint, string(models.SourceStatic), elapsed.Seconds())
	return static(), models.FetchStatus{
		Endpoint: endpoint,
		Source:   models.SourceStatic,
		Reason:   reason,
	}
}

func failureKind(err error) string {
	var se *xhttp.StatusError
	switch {
	case errors.As(err, &se):
		return "status"
	case errors.Is(err, ErrBadPayload):
		return "parse"
	default:
		return "transport"
	}
}

func lkgKey(endpoint string) string {
	return "lkg:" + endpoint
}
