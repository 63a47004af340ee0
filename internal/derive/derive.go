// Package derive turns raw aggregate metrics into chart-ready series. All
// transforms are pure and synchronous.
package derive

import (
	"sort"
	"strings"

	"StockPulse/internal/domain/models"
)

// Chart colors shared with the rendering layer.
const (
	ColorGreen  = "#22c55e"
	ColorRed    = "#ef4444"
	ColorAmber  = "#f59e0b"
	ColorPurple = "#a855f7"
	ColorYellow = "#eab308"
)

// Risk tiers used for badges.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// sentimentColor maps sentiment to its slice color; anything unknown is amber.
func sentimentColor(sentiment string) string {
	switch sentiment {
	case models.SentimentBullish:
		return ColorGreen
	case models.SentimentBearish:
		return ColorRed
	default:
		return ColorAmber
	}
}

// canonicalRank orders the known sentiments ahead of any stray keys.
func canonicalRank(sentiment string) int {
	switch sentiment {
	case models.SentimentBullish:
		return 0
	case models.SentimentBearish:
		return 1
	case models.SentimentNeutral:
		return 2
	default:
		return 3
	}
}

// SentimentDistribution renders the sentiment counts as ordered chart slices.
// Keys absent from the source map are omitted; keys present with a zero count
// render with count 0.
func SentimentDistribution(m *models.PerformanceMetrics) []models.ChartSlice {
	if m == nil || len(m.SentimentDistribution) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m.SentimentDistribution))
	for k := range m.SentimentDistribution {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := canonicalRank(keys[i]), canonicalRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	slices := make([]models.ChartSlice, 0, len(keys))
	for _, k := range keys {
		slices = append(slices, models.ChartSlice{
			Label: capitalize(k),
			Count: m.SentimentDistribution[k],
			Color: sentimentColor(k),
		})
	}
	return slices
}

// PriceTriple renders min/avg/max prices as an ordered bar triple. Missing
// metrics coerce to zero rather than erroring.
func PriceTriple(m *models.PerformanceMetrics) []models.PricePoint {
	var p models.PriceMetrics
	if m != nil {
		p = m.PriceMetrics
	}
	return []models.PricePoint{
		{Label: "Min", Value: p.MinPrice, Color: ColorRed},
		{Label: "Avg", Value: p.AvgPrice, Color: ColorPurple},
		{Label: "Max", Value: p.MaxPrice, Color: ColorGreen},
	}
}

// RiskTier classifies a risk score. Bands are evaluated in ascending order
// and inclusive on the low end.
func RiskTier(score int) string {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 6:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// AccuracyColor maps a prediction accuracy percentage to its badge color.
func AccuracyColor(accuracy float64) string {
	switch {
	case accuracy >= 95:
		return ColorGreen
	case accuracy >= 90:
		return ColorYellow
	default:
		return ColorRed
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
