package models

import "time"

// ViewState is the presentation state exposed to the rendering layer.
type ViewState string

const (
	StateLoading   ViewState = "loading"
	StateReady     ViewState = "ready"
	StateDegraded  ViewState = "degraded"
	StateHardError ViewState = "harderror"
)

// DataSource tags where a fetched value came from.
type DataSource string

const (
	SourceLive   DataSource = "live"   // decoded from a 2xx upstream response
	SourceCached DataSource = "cache"  // last-known-good payload
	SourceStatic DataSource = "static" // built-in fallback constant
)

// Endpoint names used as FetchStatus keys and metric labels.
const (
	EndpointLatest          = "latest"
	EndpointHistorical      = "historical"
	EndpointRecommendations = "recommendations"
	EndpointMetrics         = "metrics"
)

// FetchStatus records the provenance of one endpoint fetch. Reason is empty
// for live data; Warnings carry normalization notes (e.g. coerced fields).
type FetchStatus struct {
	Endpoint string     `json:"endpoint"`
	Source   DataSource `json:"source"`
	Reason   string     `json:"reason,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Live reports whether the fetch returned upstream data.
func (s FetchStatus) Live() bool { return s.Source == SourceLive }

// ChartSlice is one rendered segment of the sentiment distribution.
type ChartSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// PricePoint is one bar of the min/avg/max price chart.
type PricePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// DashboardViewModel is the coherent view assembled from one refresh cycle.
// It is replaced wholesale at cycle completion and never mutated in place, so
// readers cannot observe a torn mix of two cycles' data.
type DashboardViewModel struct {
	Latest          *LatestBundle          `json:"latest"`
	Recommendations []RecommendationRecord `json:"recommendations"`
	Metrics         *PerformanceMetrics    `json:"metrics"`
	Historical      []StockSnapshot        `json:"historical"`
	SentimentChart  []ChartSlice           `json:"sentimentChart"`
	PriceChart      []PricePoint           `json:"priceChart"`
	Sources         map[string]FetchStatus `json:"sources"`
	LastUpdated     *time.Time             `json:"lastUpdated"`
	State           ViewState              `json:"state"`
	Refreshing      bool                   `json:"refreshing"`
}
