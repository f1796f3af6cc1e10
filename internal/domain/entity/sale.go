package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentKHQR  = "khqr"
	PaymentSplit = "split"
)

// Estados de venta.
const (
	SaleCompleted = "completed"
	SaleVoided    = "voided"
	SaleRefunded  = "refunded"
)

// IsValidPaymentMethod indica si m es un método de pago soportado.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentKHQR, PaymentSplit:
		return true
	}
	return false
}

// Sale transacción de venta atribuida a un cajero. Montos en USD salvo los *KHR.
type Sale struct {
	ID            string
	InvoiceNumber string // INV-YYYYMMDD-NNNN
	CashierID     string
	CustomerID    *string
	SubtotalUSD   decimal.Decimal
	DiscountUSD   decimal.Decimal
	TotalUSD      decimal.Decimal
	PaidUSD       decimal.Decimal
	PaidKHR       decimal.Decimal
	ChangeUSD     decimal.Decimal
	ChangeKHR     decimal.Decimal
	ExchangeRate  decimal.Decimal
	PaymentMethod string
	KHQRReference string
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	SerialItemID *string
	Quantity     int
	UnitPrice    decimal.Decimal
	CostPrice    decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
}
