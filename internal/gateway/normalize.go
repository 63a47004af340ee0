package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"StockPulse/internal/domain/models"
)

// ErrBadPayload marks responses that decoded but cannot be normalized into a
// usable record. It routes the call into the fallback path.
var ErrBadPayload = errors.New("bad payload")

// Wire shapes use pointers for numerics so that absent fields are
// distinguishable from zero values and can be coerced with a recorded warning.

type wireSnapshot struct {
	Date          *string  `json:"date"`
	Symbol        *string  `json:"symbol"`
	Open          *float64 `json:"open"`
	Close         *float64 `json:"close"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Volume        *int64   `json:"volume"`
	VWAP          *float64 `json:"vwap"`
	Transactions  *int64   `json:"transactions"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
}

type wireAnalysis struct {
	Sentiment       *string  `json:"sentiment"`
	RiskScore       *int     `json:"riskScore"`
	PricePrediction *float64 `json:"pricePrediction"`
	Recommendations []string `json:"recommendations"`
	Narrative       *string  `json:"narrative"`
	ModelID         *string  `json:"modelId"`
}

type wireLatest struct {
	Date       *string       `json:"date"`
	Symbol     *string       `json:"symbol"`
	StockData  *wireSnapshot `json:"stockData"`
	AIAnalysis *wireAnalysis `json:"aiAnalysis"`
}

type wireRecommendation struct {
	Date               *string  `json:"date"`
	Symbol             *string  `json:"symbol"`
	Sentiment          *string  `json:"sentiment"`
	RiskScore          *int     `json:"riskScore"`
	PricePrediction    *float64 `json:"pricePrediction"`
	ActualPrice        *float64 `json:"actualPrice"`
	PredictionAccuracy *float64 `json:"predictionAccuracy"`
	Recommendations    []string `json:"recommendations"`
}

type wireMetrics struct {
	TotalDaysAnalyzed     *int           `json:"totalDaysAnalyzed"`
	TotalRecommendations  *int           `json:"totalRecommendations"`
	SentimentDistribution map[string]int `json:"sentimentDistribution"`
	AverageRiskScore      *float64       `json:"averageRiskScore"`
	PriceMetrics          *struct {
		MinPrice  *float64 `json:"minPrice"`
		MaxPrice  *float64 `json:"maxPrice"`
		AvgPrice  *float64 `json:"avgPrice"`
		AvgVolume *int64   `json:"avgVolume"`
	} `json:"priceMetrics"`
}

// warnings accumulates normalization notes for one fetch.
type warnings []string

func (w *warnings) coercedf(field string) {
	*w = append(*w, fmt.Sprintf("missing %s coerced to 0", field))
}

func (w *warnings) notef(format string, a ...interface{}) {
	*w = append(*w, fmt.Sprintf(format, a...))
}

func f64(p *float64, field string, w *warnings) float64 {
	if p == nil {
		w.coercedf(field)
		return 0
	}
	return *p
}

func i64(p *int64, field string, w *warnings) int64 {
	if p == nil {
		w.coercedf(field)
		return 0
	}
	return *p
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func normalizeSentiment(p *string, w *warnings) string {
	s := str(p)
	switch s {
	case models.SentimentBullish, models.SentimentBearish, models.SentimentNeutral:
		return s
	}
	w.notef("invalid sentiment %q coerced to neutral", s)
	return models.SentimentNeutral
}

func normalizeRisk(p *int, w *warnings) int {
	if p == nil {
		w.notef("missing riskScore coerced to 5")
		return 5
	}
	if *p < 0 || *p > 10 {
		w.notef("out-of-range riskScore %d coerced to 5", *p)
		return 5
	}
	return *p
}

func normalizeSnapshot(ws *wireSnapshot, w *warnings) models.StockSnapshot {
	s := models.StockSnapshot{
		Date:         str(ws.Date),
		Symbol:       str(ws.Symbol),
		Open:         f64(ws.Open, "open", w),
		Close:        f64(ws.Close, "close", w),
		High:         f64(ws.High, "high", w),
		Low:          f64(ws.Low, "low", w),
		Volume:       i64(ws.Volume, "volume", w),
		VWAP:         f64(ws.VWAP, "vwap", w),
		Transactions: i64(ws.Transactions, "transactions", w),
	}
	if ws.Change != nil {
		s.Change = *ws.Change
	} else {
		s.Change = s.Close - s.Open
	}
	if ws.ChangePercent != nil {
		s.ChangePercent = *ws.ChangePercent
	} else if s.Open != 0 {
		s.ChangePercent = s.Change / s.Open * 100
	}
	return s
}

func normalizeAnalysis(wa *wireAnalysis, w *warnings) models.AIAnalysis {
	recs := wa.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return models.AIAnalysis{
		Sentiment:       normalizeSentiment(wa.Sentiment, w),
		RiskScore:       normalizeRisk(wa.RiskScore, w),
		PricePrediction: f64(wa.PricePrediction, "pricePrediction", w),
		Recommendations: recs,
		Narrative:       str(wa.Narrative),
		ModelID:         str(wa.ModelID),
	}
}

func normalizeLatest(body []byte) (*models.LatestBundle, []string, error) {
	var wl wireLatest
	if err := json.Unmarshal(body, &wl); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if wl.Date == nil || wl.Symbol == nil || wl.StockData == nil || wl.AIAnalysis == nil {
		return nil, nil, fmt.Errorf("%w: latest missing required sections", ErrBadPayload)
	}

	var w warnings
	snap := normalizeSnapshot(wl.StockData, &w)
	if snap.Date == "" {
		snap.Date = *wl.Date
	}
	if snap.Symbol == "" {
		snap.Symbol = *wl.Symbol
	}
	return &models.LatestBundle{
		Date:       *wl.Date,
		Symbol:     *wl.Symbol,
		StockData:  snap,
		AIAnalysis: normalizeAnalysis(wl.AIAnalysis, &w),
	}, w, nil
}

func normalizeHistorical(body []byte) ([]models.StockSnapshot, []string, error) {
	var rows []wireSnapshot
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	var w warnings
	out := make([]models.StockSnapshot, 0, len(rows))
	for i := range rows {
		if rows[i].Date == nil {
			w.notef("historical row %d missing date, dropped", i)
			continue
		}
		out = append(out, normalizeSnapshot(&rows[i], &w))
	}
	if len(rows) > 0 && len(out) == 0 {
		return nil, nil, fmt.Errorf("%w: no usable historical rows", ErrBadPayload)
	}
	return out, w, nil
}

func normalizeRecommendations(body []byte) ([]models.RecommendationRecord, []string, error) {
	var rows []wireRecommendation
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	var w warnings
	out := make([]models.RecommendationRecord, 0, len(rows))
	for i := range rows {
		if rows[i].Date == nil {
			w.notef("recommendation row %d missing date, dropped", i)
			continue
		}
		recs := rows[i].Recommendations
		if recs == nil {
			recs = []string{}
		}
		out = append(out, models.RecommendationRecord{
			Date:               *rows[i].Date,
			Symbol:             str(rows[i].Symbol),
			Sentiment:          normalizeSentiment(rows[i].Sentiment, &w),
			RiskScore:          normalizeRisk(rows[i].RiskScore, &w),
			PricePrediction:    f64(rows[i].PricePrediction, "pricePrediction", &w),
			ActualPrice:        f64(rows[i].ActualPrice, "actualPrice", &w),
			PredictionAccuracy: f64(rows[i].PredictionAccuracy, "predictionAccuracy", &w),
			Recommendations:    recs,
		})
	}
	if len(rows) > 0 && len(out) == 0 {
		return nil, nil, fmt.Errorf("%w: no usable recommendation rows", ErrBadPayload)
	}
	return out, w, nil
}

func normalizeMetrics(body []byte) (*models.PerformanceMetrics, []string, error) {
	var wm wireMetrics
	if err := json.Unmarshal(body, &wm); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	var w warnings
	m := &models.PerformanceMetrics{
		SentimentDistribution: wm.SentimentDistribution,
	}
	if m.SentimentDistribution == nil {
		m.SentimentDistribution = map[string]int{}
	}
	if wm.TotalDaysAnalyzed != nil {
		m.TotalDaysAnalyzed = *wm.TotalDaysAnalyzed
	} else {
		w.coercedf("totalDaysAnalyzed")
	}
	if wm.TotalRecommendations != nil {
		m.TotalRecommendations = *wm.TotalRecommendations
	} else {
		w.coercedf("totalRecommendations")
	}
	if wm.AverageRiskScore != nil {
		m.AverageRiskScore = *wm.AverageRiskScore
	} else {
		w.coercedf("averageRiskScore")
	}
	if wm.PriceMetrics != nil {
		m.PriceMetrics = models.PriceMetrics{
			MinPrice:  f64(wm.PriceMetrics.MinPrice, "priceMetrics.minPrice", &w),
			MaxPrice:  f64(wm.PriceMetrics.MaxPrice, "priceMetrics.maxPrice", &w),
			AvgPrice:  f64(wm.PriceMetrics.AvgPrice, "priceMetrics.avgPrice", &w),
			AvgVolume: i64(wm.PriceMetrics.AvgVolume, "priceMetrics.avgVolume", &w),
		}
	} else {
		w.coercedf("priceMetrics")
	}
	return m, w, nil
}
