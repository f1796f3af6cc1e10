package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CashierPerformance fila agregada del reporte de desempeño.
type CashierPerformance struct {
	CashierID    string
	CashierName  string
	TotalSales   int
	TotalRevenue decimal.Decimal
}

// PaymentMethodTotal ventas agrupadas por método de pago.
type PaymentMethodTotal struct {
	PaymentMethod string
	Count         int
	TotalUSD      decimal.Decimal
}

// TopProduct producto más vendido en un rango.
type TopProduct struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  int
	Revenue   decimal.Decimal
}

// ProfitTotals ingreso y costo de las ventas completed de un rango.
type ProfitTotals struct {
	SalesCount int
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
}

// ReportRepository agregaciones de solo lectura sobre ventas (DIP). Rango [from, to] inclusivo.
type ReportRepository interface {
	// Performance agrupa ventas completed por cajero, ordenadas por ingreso descendente.
	Performance(ctx context.Context, from, to time.Time) ([]*CashierPerformance, error)
	SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]*PaymentMethodTotal, error)
	TopSelling(ctx context.Context, from, to time.Time, limit int) ([]*TopProduct, error)
	// Profit suma total_usd de las ventas y cost_price*quantity de sus líneas.
	Profit(ctx context.Context, from, to time.Time) (*ProfitTotals, error)
}
