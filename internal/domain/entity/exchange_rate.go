package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate tasa USD→KHR de un día. Hay como máximo un registro por RateDate.
type ExchangeRate struct {
	ID        string
	RateDate  time.Time // fecha (sin hora)
	USDToKHR  decimal.Decimal
	SetBy     string // ID del usuario que la fijó
	CreatedAt time.Time
	UpdatedAt time.Time
}
