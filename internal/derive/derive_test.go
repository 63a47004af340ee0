package derive

import (
	"testing"

	"StockPulse/internal/domain/models"
)

func TestSentimentDistributionOrderAndColors(t *testing.T) {
	m := &models.PerformanceMetrics{
		SentimentDistribution: map[string]int{
			"neutral": 0,
			"bearish": 1,
			"bullish": 2,
		},
	}

	got := SentimentDistribution(m)
	if len(got) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(got))
	}
	want := []models.ChartSlice{
		{Label: "Bullish", Count: 2, Color: ColorGreen},
		{Label: "Bearish", Count: 1, Color: ColorRed},
		{Label: "Neutral", Count: 0, Color: ColorAmber},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slice %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSentimentDistributionOmitsAbsentKeys(t *testing.T) {
	m := &models.PerformanceMetrics{
		SentimentDistribution: map[string]int{"bullish": 2, "bearish": 1},
	}
	got := SentimentDistribution(m)
	if len(got) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(got))
	}
	for _, s := range got {
		if s.Label == "Neutral" {
			t.Error("neutral should be omitted when absent from the source map")
		}
	}
}

func TestSentimentDistributionUnknownKeyAmber(t *testing.T) {
	m := &models.PerformanceMetrics{
		SentimentDistribution: map[string]int{"mixed": 1, "bullish": 1},
	}
	got := SentimentDistribution(m)
	if got[0].Label != "Bullish" {
		t.Errorf("expected known sentiments first, got %s", got[0].Label)
	}
	if got[1].Label != "Mixed" || got[1].Color != ColorAmber {
		t.Errorf("expected amber Mixed slice, got %+v", got[1])
	}
}

func TestPriceTriple(t *testing.T) {
	m := &models.PerformanceMetrics{
		PriceMetrics: models.PriceMetrics{MinPrice: 100, AvgPrice: 150, MaxPrice: 200},
	}
	got := PriceTriple(m)
	want := []models.PricePoint{
		{Label: "Min", Value: 100, Color: ColorRed},
		{Label: "Avg", Value: 150, Color: ColorPurple},
		{Label: "Max", Value: 200, Color: ColorGreen},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPriceTripleNilMetrics(t *testing.T) {
	got := PriceTriple(nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	for _, p := range got {
		if p.Value != 0 {
			t.Errorf("expected zero-coerced value, got %+v", p)
		}
	}
}

func TestRiskTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, RiskLow},
		{3, RiskLow},
		{4, RiskMedium},
		{6, RiskMedium},
		{7, RiskHigh},
		{10, RiskHigh},
	}
	for _, c := range cases {
		if got := RiskTier(c.score); got != c.want {
			t.Errorf("RiskTier(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestAccuracyColorBoundaries(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     string
	}{
		{94.99, ColorYellow},
		{95.00, ColorGreen},
		{90.00, ColorYellow},
		{89.99, ColorRed},
		{100, ColorGreen},
	}
	for _, c := range cases {
		if got := AccuracyColor(c.accuracy); got != c.want {
			t.Errorf("AccuracyColor(%v) = %s, want %s", c.accuracy, got, c.want)
		}
	}
}
