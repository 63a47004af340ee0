package models

// Requests for the dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type SortRequest struct {
	Field string `query:"field" json:"field" validate:"required,oneof=date sentiment riskScore"`
}

type FilterRequest struct {
	Sentiment string `query:"sentiment" json:"sentiment" default:"all" validate:"oneof=all bullish bearish neutral"`
}

type RowsRequest struct {
	Limit int `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=1000"`
}
