// Package tableview maintains the interactive sort and filter state of the
// recommendation table and computes the visible slice.
package tableview

import (
	"sort"
	"strings"
	"sync"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/util"
)

type SortField string

const (
	SortByDate      SortField = "date"
	SortBySentiment SortField = "sentiment"
	SortByRisk      SortField = "riskScore"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FilterAll passes every record.
const FilterAll = "all"

// Engine holds the current table state. Safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	field     SortField
	direction Direction
	sentiment string
}

// NewEngine creates an engine with the default state: date descending, no filter.
func NewEngine() *Engine {
	return &Engine{
		field:     SortByDate,
		direction: Desc,
		sentiment: FilterAll,
	}
}

// SetFilter replaces the sentiment filter. Sort state is untouched.
func (e *Engine) SetFilter(sentiment string) {
	e.mu.Lock()
	e.sentiment = sentiment
	e.mu.Unlock()
}

// ToggleSort flips the direction when field is already active, otherwise
// switches to field and resets the direction to descending.
func (e *Engine) ToggleSort(field SortField) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if field == e.field {
		if e.direction == Asc {
			e.direction = Desc
		} else {
			e.direction = Asc
		}
		return
	}
	e.field = field
	e.direction = Desc
}

// State returns the current sort field, direction, and filter.
func (e *Engine) State() (SortField, Direction, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.field, e.direction, e.sentiment
}

// VisibleRows filters records by the current sentiment filter and sorts them
// by the current field and direction. The input is not mutated; equal keys
// keep their input order so output is deterministic.
func (e *Engine) VisibleRows(records []models.RecommendationRecord) []models.RecommendationRecord {
	field, direction, sentiment := e.State()

	out := make([]models.RecommendationRecord, 0, len(records))
	for _, r := range records {
		if sentiment == FilterAll || strings.EqualFold(r.Sentiment, sentiment) {
			out = append(out, r)
		}
	}

	less := lessFunc(field, out)
	sort.SliceStable(out, func(i, j int) bool {
		if direction == Asc {
			return less(i, j)
		}
		return less(j, i)
	})
	return out
}

func lessFunc(field SortField, rows []models.RecommendationRecord) func(i, j int) bool {
	switch field {
	case SortByRisk:
		return func(i, j int) bool { return rows[i].RiskScore < rows[j].RiskScore }
	case SortBySentiment:
		return func(i, j int) bool { return rows[i].Sentiment < rows[j].Sentiment }
	default:
		// Dates compare chronologically, not lexicographically: upstream dates
		// are not always zero padded.
		return func(i, j int) bool {
			ti := util.ParseDayDefault(rows[i].Date, time.Time{})
			tj := util.ParseDayDefault(rows[j].Date, time.Time{})
			return ti.Before(tj)
		}
	}
}
