package gateway

import "StockPulse/internal/domain/models"

// Static fallback values. Schema-valid sample records returned when an
// endpoint fails and no last-known-good payload is cached. Derived from the
// upstream demo dataset so the dashboard always has something coherent to show.

const (
	fallbackDate   = "2025-09-12"
	fallbackSymbol = "AAPL"
)

func fallbackSnapshot() models.StockSnapshot {
	return models.StockSnapshot{
		Date:          fallbackDate,
		Symbol:        fallbackSymbol,
		Open:          150.25,
		Close:         152.80,
		High:          154.20,
		Low:           149.50,
		Volume:        25000000,
		VWAP:          151.75,
		Transactions:  85000,
		Change:        2.55,
		ChangePercent: 1.70,
	}
}

func fallbackAnalysis() models.AIAnalysis {
	return models.AIAnalysis{
		Sentiment:       models.SentimentBullish,
		RiskScore:       5,
		PricePrediction: 155.86,
		Recommendations: []string{
			"Monitor volume trends for momentum confirmation",
			"Watch for price action near VWAP levels",
			"Consider position sizing based on volatility",
		},
		Narrative: "Sample analysis: bullish movement with $2.55 gain on typical volume",
		ModelID:   "fallback",
	}
}

func fallbackLatest() *models.LatestBundle {
	return &models.LatestBundle{
		Date:       fallbackDate,
		Symbol:     fallbackSymbol,
		StockData:  fallbackSnapshot(),
		AIAnalysis: fallbackAnalysis(),
	}
}

func fallbackHistorical() []models.StockSnapshot {
	return []models.StockSnapshot{fallbackSnapshot()}
}

func fallbackRecommendations() []models.RecommendationRecord {
	a := fallbackAnalysis()
	s := fallbackSnapshot()
	return []models.RecommendationRecord{{
		Date:               s.Date,
		Symbol:             s.Symbol,
		Sentiment:          a.Sentiment,
		RiskScore:          a.RiskScore,
		PricePrediction:    a.PricePrediction,
		ActualPrice:        s.Close,
		PredictionAccuracy: 98.0,
		Recommendations:    a.Recommendations,
	}}
}

func fallbackMetrics() *models.PerformanceMetrics {
	return &models.PerformanceMetrics{
		TotalDaysAnalyzed:     1,
		TotalRecommendations:  3,
		SentimentDistribution: map[string]int{models.SentimentBullish: 1},
		AverageRiskScore:      5.0,
		PriceMetrics: models.PriceMetrics{
			MinPrice:  149.50,
			MaxPrice:  154.20,
			AvgPrice:  151.75,
			AvgVolume: 25000000,
		},
	}
}
