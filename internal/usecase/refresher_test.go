package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/tableview"
	"StockPulse/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string, float64) {}
func (nopMetrics) RecordCycle(string, float64)         {}
func (nopMetrics) RecordViewState(string)              {}
func (nopMetrics) RecordError(string)                  {}

type cycleRecorder struct {
	nopMetrics
	mu       sync.Mutex
	triggers []string
}

func (r *cycleRecorder) RecordCycle(trigger string, _ float64) {
	r.mu.Lock()
	r.triggers = append(r.triggers, trigger)
	r.mu.Unlock()
}

func (r *cycleRecorder) Triggers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.triggers))
	copy(out, r.triggers)
	return out
}

// stubGateway serves canned data. When block is non-nil every fetch waits
// until the channel closes or the cycle is cancelled.
type stubGateway struct {
	block         chan struct{}
	metricsStatic bool
	fetches       int32
}

func (g *stubGateway) wait(ctx context.Context) bool {
	atomic.AddInt32(&g.fetches, 1)
	if g.block == nil {
		return true
	}
	select {
	case <-g.block:
		return true
	case <-ctx.Done():
		return false
	}
}

func live(endpoint string) models.FetchStatus {
	return models.FetchStatus{Endpoint: endpoint, Source: models.SourceLive}
}

func (g *stubGateway) FetchLatest(ctx context.Context) (*models.LatestBundle, models.FetchStatus) {
	if !g.wait(ctx) {
		return nil, models.FetchStatus{Endpoint: models.EndpointLatest, Source: models.SourceStatic, Reason: "cancelled"}
	}
	return &models.LatestBundle{Date: "2025-09-12", Symbol: "AAPL"}, live(models.EndpointLatest)
}

func (g *stubGateway) FetchHistorical(ctx context.Context, days int) ([]models.StockSnapshot, models.FetchStatus) {
	if !g.wait(ctx) {
		return nil, models.FetchStatus{Endpoint: models.EndpointHistorical, Source: models.SourceStatic, Reason: "cancelled"}
	}
	return []models.StockSnapshot{{Date: "2025-09-12", Symbol: "AAPL", Close: 226.79}}, live(models.EndpointHistorical)
}

func (g *stubGateway) FetchRecommendations(ctx context.Context) ([]models.RecommendationRecord, models.FetchStatus) {
	if !g.wait(ctx) {
		return nil, models.FetchStatus{Endpoint: models.EndpointRecommendations, Source: models.SourceStatic, Reason: "cancelled"}
	}
	return []models.RecommendationRecord{
		{Date: "2025-09-10", Symbol: "AAPL", Sentiment: "bullish", RiskScore: 3},
		{Date: "2025-09-11", Symbol: "AAPL", Sentiment: "bullish", RiskScore: 4},
		{Date: "2025-09-12", Symbol: "AAPL", Sentiment: "bearish", RiskScore: 8},
	}, live(models.EndpointRecommendations)
}

func (g *stubGateway) FetchMetrics(ctx context.Context) (*models.PerformanceMetrics, models.FetchStatus) {
	if !g.wait(ctx) {
		return nil, models.FetchStatus{Endpoint: models.EndpointMetrics, Source: models.SourceStatic, Reason: "cancelled"}
	}
	m := &models.PerformanceMetrics{
		TotalDaysAnalyzed:     3,
		TotalRecommendations:  3,
		SentimentDistribution: map[string]int{"bullish": 2, "bearish": 1},
		AverageRiskScore:      5.0,
		PriceMetrics:          models.PriceMetrics{MinPrice: 220, MaxPrice: 232, AvgPrice: 226},
	}
	if g.metricsStatic {
		return m, models.FetchStatus{Endpoint: models.EndpointMetrics, Source: models.SourceStatic, Reason: "status 500"}
	}
	return m, live(models.EndpointMetrics)
}

func (g *stubGateway) Health(ctx context.Context) error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestRefresher(t *testing.T, g *stubGateway, m domrepo.Metrics) (*Refresher, *Board) {
	t.Helper()
	board := NewBoard(m)
	r := NewRefresher(g, board, tableview.NewEngine(), testLogger(t), m, time.Hour, 30)
	return r, board
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before timeout")
}

func TestStartPublishesInitialSnapshot(t *testing.T) {
	rec := &cycleRecorder{}
	r, board := newTestRefresher(t, &stubGateway{}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer r.Stop()

	if got := board.State(); got != models.StateReady {
		t.Fatalf("state = %s, want ready", got)
	}
	snap := board.Snapshot()
	if snap.Latest == nil || snap.Latest.Symbol != "AAPL" {
		t.Fatal("latest not published")
	}
	if snap.LastUpdated == nil {
		t.Fatal("lastUpdated not set")
	}
	if tr := rec.Triggers(); len(tr) != 1 || tr[0] != TriggerStartup {
		t.Fatalf("triggers = %v, want [startup]", tr)
	}
}

func TestCycleAssemblesCharts(t *testing.T) {
	r, board := newTestRefresher(t, &stubGateway{}, nopMetrics{})
	r.runCycle(context.Background(), TriggerStartup)

	snap := board.Snapshot()
	if len(snap.SentimentChart) != 2 {
		t.Fatalf("sentiment chart has %d slices, want 2", len(snap.SentimentChart))
	}
	if snap.SentimentChart[0].Label != "Bullish" || snap.SentimentChart[0].Count != 2 {
		t.Fatalf("first slice = %+v, want Bullish:2", snap.SentimentChart[0])
	}
	if snap.SentimentChart[1].Label != "Bearish" || snap.SentimentChart[1].Count != 1 {
		t.Fatalf("second slice = %+v, want Bearish:1", snap.SentimentChart[1])
	}
	if len(snap.PriceChart) != 3 || snap.PriceChart[0].Label != "Min" || snap.PriceChart[2].Value != 232 {
		t.Fatalf("price chart = %+v", snap.PriceChart)
	}
	if len(snap.Sources) != 4 {
		t.Fatalf("sources has %d entries, want 4", len(snap.Sources))
	}
}

func TestMetricsFallbackDegradesButKeepsData(t *testing.T) {
	r, board := newTestRefresher(t, &stubGateway{metricsStatic: true}, nopMetrics{})
	r.runCycle(context.Background(), TriggerStartup)

	snap := board.Snapshot()
	if snap.State != models.StateDegraded {
		t.Fatalf("state = %s, want degraded when one endpoint fell back", snap.State)
	}
	if snap.Latest == nil || len(snap.Recommendations) != 3 {
		t.Fatal("live endpoints must still populate the view model")
	}
	if snap.Metrics == nil {
		t.Fatal("fallback metrics must still be present")
	}
	if st := snap.Sources[models.EndpointMetrics]; st.Source != models.SourceStatic || st.Reason == "" {
		t.Fatalf("metrics status = %+v, want static with reason", st)
	}
	if st := snap.Sources[models.EndpointLatest]; !st.Live() {
		t.Fatalf("latest status = %+v, want live", st)
	}
}

func TestDashboardAppliesSortAndFilter(t *testing.T) {
	r, _ := newTestRefresher(t, &stubGateway{}, nopMetrics{})
	r.runCycle(context.Background(), TriggerStartup)

	vm := r.Dashboard()
	if len(vm.Recommendations) != 3 || vm.Recommendations[0].Date != "2025-09-12" {
		t.Fatalf("default sort must list newest first, got %+v", vm.Recommendations)
	}

	_, _, filter := r.Filter("bearish")
	if filter != "bearish" {
		t.Fatalf("filter = %s", filter)
	}
	rows := r.Rows(0)
	if len(rows) != 1 || rows[0].Date != "2025-09-12" {
		t.Fatalf("bearish filter rows = %+v", rows)
	}

	_, _, _ = r.Filter("all")
	field, dir, _ := r.Sort(tableview.SortByRisk)
	if field != tableview.SortByRisk || dir != tableview.Desc {
		t.Fatalf("sort state = %s %s", field, dir)
	}
	rows = r.Rows(2)
	if len(rows) != 2 || rows[0].RiskScore != 8 {
		t.Fatalf("limited risk-sorted rows = %+v", rows)
	}
}

func TestManualTriggerReplacesInFlightCycle(t *testing.T) {
	rec := &cycleRecorder{}
	g := &stubGateway{block: make(chan struct{})}
	r, board := newTestRefresher(t, g, rec)
	r.baseCtx = context.Background()

	r.TriggerManual()
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&g.fetches) >= 4 })

	r.TriggerManual()
	close(g.block)
	waitFor(t, time.Second, func() bool { return len(rec.Triggers()) == 1 })

	// The first cycle was cancelled and publishes nothing; only the
	// replacement commits.
	time.Sleep(20 * time.Millisecond)
	if tr := rec.Triggers(); len(tr) != 1 || tr[0] != TriggerManual {
		t.Fatalf("triggers = %v, want exactly one manual cycle", tr)
	}
	if got := board.State(); got != models.StateReady {
		t.Fatalf("state = %s, want ready", got)
	}
}

func TestPeriodicTickJoinsInFlightCycle(t *testing.T) {
	rec := &cycleRecorder{}
	g := &stubGateway{block: make(chan struct{})}
	r, _ := newTestRefresher(t, g, rec)
	r.baseCtx = context.Background()

	r.TriggerManual()
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&g.fetches) >= 4 })

	r.periodicTick()
	if n := atomic.LoadInt32(&g.fetches); n != 4 {
		t.Fatalf("tick during in-flight cycle started new fetches: %d", n)
	}

	close(g.block)
	waitFor(t, time.Second, func() bool { return len(rec.Triggers()) == 1 })
	if tr := rec.Triggers(); tr[0] != TriggerManual {
		t.Fatalf("triggers = %v", tr)
	}
}

func TestStopCancelsInFlightCycle(t *testing.T) {
	g := &stubGateway{block: make(chan struct{})}
	r, _ := newTestRefresher(t, g, nopMetrics{})
	r.baseCtx = context.Background()

	r.TriggerManual()
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&g.fetches) >= 4 })

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not unwind the in-flight cycle")
	}
}
