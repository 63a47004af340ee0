package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"StockPulse/internal/derive"
	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/tableview"
	"StockPulse/pkg/logger"
)

// Refresh triggers, used as metric labels.
const (
	TriggerStartup  = "startup"
	TriggerPeriodic = "periodic"
	TriggerManual   = "manual"
)

// Refresher owns the refresh lifecycle: it runs one cycle at start, schedules
// periodic cycles, and serves manual refresh requests. At most one cycle is
// in flight at a time. A manual trigger cancels and replaces a running cycle;
// a periodic tick that finds a cycle running joins it instead of stacking.
type Refresher struct {
	gateway  domrepo.DashboardGateway
	board    *Board
	table    *tableview.Engine
	log      *logger.Logger
	metrics  domrepo.Metrics
	days     int
	interval time.Duration

	mu      sync.Mutex
	baseCtx context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	sched   *cron.Cron
}

// NewRefresher creates a refresher that polls every interval and requests
// historicalDays of daily bars per cycle.
func NewRefresher(gateway domrepo.DashboardGateway, board *Board, table *tableview.Engine, log *logger.Logger, metrics domrepo.Metrics, interval time.Duration, historicalDays int) *Refresher {
	return &Refresher{
		gateway:  gateway,
		board:    board,
		table:    table,
		log:      log,
		metrics:  metrics,
		days:     historicalDays,
		interval: interval,
	}
}

// Start runs the initial cycle synchronously so the first snapshot is
// published before the server accepts traffic, then starts the periodic
// schedule. ctx bounds every cycle the refresher will ever run.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.sched != nil {
		r.mu.Unlock()
		return fmt.Errorf("refresher already started")
	}
	r.baseCtx = ctx
	r.sched = cron.New()
	r.mu.Unlock()

	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.runCycle(cycleCtx, TriggerStartup)

	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.sched.AddFunc(spec, r.periodicTick); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", spec, err)
	}
	r.sched.Start()
	r.log.Info("refresh schedule started", logger.Duration("interval", r.interval))
	return nil
}

// Stop halts the schedule and cancels any in-flight cycle, waiting for it to
// unwind.
func (r *Refresher) Stop() {
	r.mu.Lock()
	sched := r.sched
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	if sched != nil {
		<-sched.Stop().Done()
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// TriggerManual starts a fresh cycle immediately, cancelling any cycle
// already in flight. It returns without waiting for the cycle to finish.
func (r *Refresher) TriggerManual() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	r.startLocked(TriggerManual)
}

// periodicTick starts a cycle unless one is already running.
func (r *Refresher) periodicTick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		select {
		case <-r.done:
		default:
			r.log.Debug("periodic refresh skipped, cycle in flight")
			return
		}
	}
	r.startLocked(TriggerPeriodic)
}

func (r *Refresher) startLocked(trigger string) {
	base := r.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		defer cancel()
		r.runCycle(ctx, trigger)
	}()
}

// runCycle fetches all endpoints concurrently, assembles a view model, and
// publishes it. A cancelled cycle publishes nothing; the replacing cycle's
// result wins.
func (r *Refresher) runCycle(ctx context.Context, trigger string) {
	start := time.Now()
	r.board.BeginCycle()
	r.log.Debug("refresh cycle started", logger.String("trigger", trigger))

	var (
		wg       sync.WaitGroup
		latest   *models.LatestBundle
		latestSt models.FetchStatus
		hist     []models.StockSnapshot
		histSt   models.FetchStatus
		recs     []models.RecommendationRecord
		recsSt   models.FetchStatus
		perf     *models.PerformanceMetrics
		perfSt   models.FetchStatus
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		latest, latestSt = r.gateway.FetchLatest(ctx)
	}()
	go func() {
		defer wg.Done()
		hist, histSt = r.gateway.FetchHistorical(ctx, r.days)
	}()
	go func() {
		defer wg.Done()
		recs, recsSt = r.gateway.FetchRecommendations(ctx)
	}()
	go func() {
		defer wg.Done()
		perf, perfSt = r.gateway.FetchMetrics(ctx)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		r.log.Debug("refresh cycle cancelled", logger.String("trigger", trigger))
		return
	}

	vm := models.DashboardViewModel{
		Latest:          latest,
		Recommendations: recs,
		Metrics:         perf,
		Historical:      hist,
		SentimentChart:  derive.SentimentDistribution(perf),
		PriceChart:      derive.PriceTriple(perf),
		Sources: map[string]models.FetchStatus{
			models.EndpointLatest:          latestSt,
			models.EndpointHistorical:      histSt,
			models.EndpointRecommendations: recsSt,
			models.EndpointMetrics:         perfSt,
		},
	}
	r.board.Complete(vm)

	elapsed := time.Since(start)
	r.metrics.RecordCycle(trigger, elapsed.Seconds())
	r.log.Info("refresh cycle complete",
		logger.String("trigger", trigger),
		logger.String("state", string(r.board.State())),
		logger.Duration("elapsed", elapsed))
}

// Dashboard returns the published view model with the table's sort and filter
// applied to the recommendation rows.
func (r *Refresher) Dashboard() models.DashboardViewModel {
	vm := r.board.Snapshot()
	vm.Recommendations = r.table.VisibleRows(vm.Recommendations)
	return vm
}

// Rows returns the visible recommendation rows, truncated to limit when
// limit is positive.
func (r *Refresher) Rows(limit int) []models.RecommendationRecord {
	rows := r.table.VisibleRows(r.board.Snapshot().Recommendations)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// TableState returns the current sort field, direction, and filter.
func (r *Refresher) TableState() (tableview.SortField, tableview.Direction, string) {
	return r.table.State()
}

// Sort toggles the sort on field and returns the resulting table state.
func (r *Refresher) Sort(field tableview.SortField) (tableview.SortField, tableview.Direction, string) {
	r.table.ToggleSort(field)
	return r.table.State()
}

// Filter replaces the sentiment filter and returns the resulting table state.
func (r *Refresher) Filter(sentiment string) (tableview.SortField, tableview.Direction, string) {
	r.table.SetFilter(sentiment)
	return r.table.State()
}
