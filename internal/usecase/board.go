package usecase

import (
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
)

// Board holds the published dashboard view model and drives the presentation
// state machine. Readers always see a complete, consistent snapshot; a refresh
// cycle swaps the whole model in one step.
type Board struct {
	mu      sync.RWMutex
	current models.DashboardViewModel
	cycles  int
	metrics domrepo.Metrics
}

// NewBoard creates a board in the loading state with no data published yet.
func NewBoard(metrics domrepo.Metrics) *Board {
	b := &Board{
		current: models.DashboardViewModel{State: models.StateLoading},
		metrics: metrics,
	}
	metrics.RecordViewState(string(models.StateLoading))
	return b
}

// Snapshot returns a copy of the published view model.
func (b *Board) Snapshot() models.DashboardViewModel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// State returns the current presentation state.
func (b *Board) State() models.ViewState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current.State
}

// BeginCycle marks the board as refreshing. The published data stays visible
// while the new cycle runs.
func (b *Board) BeginCycle() {
	b.mu.Lock()
	b.current.Refreshing = true
	b.mu.Unlock()
}

// Complete publishes the view model produced by a finished cycle and advances
// the state machine. The first cycle leaves loading: all endpoints live means
// ready, a mix means degraded, and zero live endpoints means the hard error
// state. Later cycles only move between ready and degraded; once real data has
// been shown the board never regresses to a blank error page.
func (b *Board) Complete(vm models.DashboardViewModel) {
	live, total := countLive(vm.Sources)

	b.mu.Lock()
	defer b.mu.Unlock()

	first := b.cycles == 0
	b.cycles++

	switch {
	case first && live == 0:
		vm.State = models.StateHardError
	case live == total:
		vm.State = models.StateReady
	default:
		vm.State = models.StateDegraded
	}

	now := time.Now()
	vm.LastUpdated = &now
	vm.Refreshing = false
	b.current = vm
	b.metrics.RecordViewState(string(vm.State))
}

// Fail records a cycle that produced no view model at all. Before the first
// publish the board drops to the hard error state; afterwards the last good
// model stays up and the board degrades.
func (b *Board) Fail() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cycles++
	b.current.Refreshing = false
	if b.current.LastUpdated == nil {
		b.current.State = models.StateHardError
	} else {
		b.current.State = models.StateDegraded
	}
	b.metrics.RecordViewState(string(b.current.State))
}

func countLive(sources map[string]models.FetchStatus) (live, total int) {
	for _, s := range sources {
		total++
		if s.Live() {
			live++
		}
	}
	return live, total
}
