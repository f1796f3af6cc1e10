package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	CustomerID    *string           `json:"customer_id"`
	DiscountUSD   decimal.Decimal   `json:"discount_usd"`
	PaidUSD       decimal.Decimal   `json:"paid_usd"`
	PaidKHR       decimal.Decimal   `json:"paid_khr"`
	PaymentMethod string            `json:"payment_method"`
	KHQRReference string            `json:"khqr_reference"`
	Notes         string            `json:"notes"`
}

// SaleItemRequest línea pedida. Serializados: SerialItemID y cantidad 1.
type SaleItemRequest struct {
	ProductID    string           `json:"product_id"`
	SerialItemID *string          `json:"serial_item_id"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"` // nil = precio de lista
	Discount     decimal.Decimal  `json:"discount"`
}

// SaleListQuery filtros del listado de ventas.
type SaleListQuery struct {
	PageRequest
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	CashierID     string `query:"cashier_id"`
	PaymentMethod string `query:"payment_method"`
}

// PaymentSummary desglose del cobro devuelto al crear la venta.
type PaymentSummary struct {
	TotalUSD     decimal.Decimal `json:"total_usd"`
	TotalPaidUSD decimal.Decimal `json:"total_paid_usd"`
	ChangeUSD    decimal.Decimal `json:"change_usd"`
	ChangeKHR    decimal.Decimal `json:"change_khr"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	IsExact      bool            `json:"is_exact"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CashierID     string             `json:"cashier_id"`
	CashierName   string             `json:"cashier_name,omitempty"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	SubtotalUSD   decimal.Decimal    `json:"subtotal_usd"`
	DiscountUSD   decimal.Decimal    `json:"discount_usd"`
	TotalUSD      decimal.Decimal    `json:"total_usd"`
	PaidUSD       decimal.Decimal    `json:"paid_usd"`
	PaidKHR       decimal.Decimal    `json:"paid_khr"`
	ChangeUSD     decimal.Decimal    `json:"change_usd"`
	ChangeKHR     decimal.Decimal    `json:"change_khr"`
	ExchangeRate  decimal.Decimal    `json:"exchange_rate"`
	PaymentMethod string             `json:"payment_method"`
	KHQRReference string             `json:"khqr_reference,omitempty"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	ItemCount     int                `json:"item_count,omitempty"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	Warranties    []WarrantyResponse `json:"warranties,omitempty"`
	Payment       *PaymentSummary    `json:"payment,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleItemResponse línea de venta. CostPrice se omite para cajeros.
type SaleItemResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	SKU          string           `json:"sku"`
	SerialItemID *string          `json:"serial_item_id,omitempty"`
	IMEI         *string          `json:"imei,omitempty"`
	SerialNumber *string          `json:"serial_number,omitempty"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Discount     decimal.Decimal  `json:"discount"`
	Total        decimal.Decimal  `json:"total"`
}

// WarrantyResponse garantía emitida con la venta.
type WarrantyResponse struct {
	ID             string `json:"id"`
	SerialItemID   string `json:"serial_item_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationMonths int    `json:"duration_months"`
	Status         string `json:"status"`
}

// SaleNotesRequest notas internas de una venta.
type SaleNotesRequest struct {
	InternalNotes string `json:"internal_notes"`
}
