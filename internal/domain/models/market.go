package models

// Sentiment values produced by the upstream AI analysis.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// StockSnapshot is one trading day of OHLCV data for a symbol.
// Immutable once fetched; uniquely identified by (Symbol, Date).
type StockSnapshot struct {
	Date          string  `json:"date"`
	Symbol        string  `json:"symbol"`
	Open          float64 `json:"open"`
	Close         float64 `json:"close"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
	VWAP          float64 `json:"vwap"`
	Transactions  int64   `json:"transactions"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// AIAnalysis is the model-generated assessment associated 1:1 with a
// StockSnapshot by date.
type AIAnalysis struct {
	Sentiment       string   `json:"sentiment"`
	RiskScore       int      `json:"riskScore"` // 0..10
	PricePrediction float64  `json:"pricePrediction"`
	Recommendations []string `json:"recommendations"`
	Narrative       string   `json:"narrative"`
	ModelID         string   `json:"modelId"`
}

// LatestBundle pairs the most recent snapshot with its analysis.
type LatestBundle struct {
	Date       string        `json:"date"`
	Symbol     string        `json:"symbol"`
	StockData  StockSnapshot `json:"stockData"`
	AIAnalysis AIAnalysis    `json:"aiAnalysis"`
}

// RecommendationRecord is one analyzed trading day from the append-only
// history: snapshot + analysis flattened with the realized outcome.
type RecommendationRecord struct {
	Date               string   `json:"date"`
	Symbol             string   `json:"symbol"`
	Sentiment          string   `json:"sentiment"`
	RiskScore          int      `json:"riskScore"`
	PricePrediction    float64  `json:"pricePrediction"`
	ActualPrice        float64  `json:"actualPrice"`
	PredictionAccuracy float64  `json:"predictionAccuracy"` // 0..100
	Recommendations    []string `json:"recommendations"`
}

// PriceMetrics aggregates price and volume over the full history.
type PriceMetrics struct {
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	AvgPrice  float64 `json:"avgPrice"`
	AvgVolume int64   `json:"avgVolume"`
}

// PerformanceMetrics is the upstream-computed aggregate over all
// recommendation records. The orchestration layer treats it as read-only.
type PerformanceMetrics struct {
	TotalDaysAnalyzed     int            `json:"totalDaysAnalyzed"`
	TotalRecommendations  int            `json:"totalRecommendations"`
	SentimentDistribution map[string]int `json:"sentimentDistribution"`
	AverageRiskScore      float64        `json:"averageRiskScore"`
	PriceMetrics          PriceMetrics   `json:"priceMetrics"`
}
