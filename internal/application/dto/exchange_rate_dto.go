package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetExchangeRateRequest entrada para fijar la tasa. RateDate vacío = hoy.
type SetExchangeRateRequest struct {
	USDToKHR decimal.Decimal `json:"usd_to_khr"`
	RateDate string          `json:"rate_date"`
}

// ExchangeRateResponse salida de una tasa.
type ExchangeRateResponse struct {
	ID        string          `json:"id"`
	RateDate  string          `json:"rate_date"`
	USDToKHR  decimal.Decimal `json:"usd_to_khr"`
	SetBy     string          `json:"set_by"`
	SetByName string          `json:"set_by_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
