package dto

import "github.com/shopspring/decimal"

// PerformanceRow desempeño de un cajero en el rango.
type PerformanceRow struct {
	CashierID    string          `json:"cashier_id"`
	CashierName  string          `json:"cashier_name"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// PerformanceReport reporte de desempeño por cajero.
type PerformanceReport struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Rows      []PerformanceRow `json:"rows"`
}

// PaymentMethodRow ventas de un método de pago.
type PaymentMethodRow struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int             `json:"count"`
	TotalUSD      decimal.Decimal `json:"total_usd"`
}

// DailySummary resumen de ventas de un día.
type DailySummary struct {
	Date         string             `json:"date"`
	TotalSales   int                `json:"total_sales"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	ByMethod     []PaymentMethodRow `json:"by_payment_method"`
}

// TopProductRow producto más vendido.
type TopProductRow struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ReportPeriod rango consultado.
type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ProfitReport ingreso, costo y margen bruto del rango. ProfitMargin es porcentaje con un decimal.
type ProfitReport struct {
	Period       ReportPeriod    `json:"period"`
	SalesCount   int             `json:"sales_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}
