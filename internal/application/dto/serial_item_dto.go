package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SerialItemRequest entrada para registrar una unidad.
type SerialItemRequest struct {
	ProductID    string           `json:"product_id"`
	IMEI         *string          `json:"imei"`
	SerialNumber *string          `json:"serial_number"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Notes        string           `json:"notes"`
}

// UpdateSerialItemRequest cambios permitidos sobre una unidad. Los campos nil no se tocan.
type UpdateSerialItemRequest struct {
	Status    *string          `json:"status"`
	Notes     *string          `json:"notes"`
	CostPrice *decimal.Decimal `json:"cost_price"`
}

// BulkSerialItemRequest alta masiva de unidades de un mismo producto.
type BulkSerialItemRequest struct {
	ProductID string                  `json:"product_id"`
	Items     []BulkSerialItemPayload `json:"items"`
}

// BulkSerialItemPayload unidad dentro de un alta masiva.
type BulkSerialItemPayload struct {
	IMEI         *string          `json:"imei"`
	SerialNumber *string          `json:"serial_number"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Notes        string           `json:"notes"`
}

// BulkItemError error de una posición del alta masiva.
type BulkItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// BulkSerialItemResponse resultado del alta masiva.
type BulkSerialItemResponse struct {
	Created []SerialItemResponse `json:"created"`
	Errors  []BulkItemError      `json:"errors,omitempty"`
}

// SerialItemResponse salida de una unidad.
type SerialItemResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	IMEI         *string          `json:"imei,omitempty"`
	SerialNumber *string          `json:"serial_number,omitempty"`
	Status       string           `json:"status"`
	SaleID       *string          `json:"sale_id,omitempty"`
	SoldAt       *time.Time       `json:"sold_at,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// SerialItemDetailResponse unidad con el producto al que pertenece.
type SerialItemDetailResponse struct {
	SerialItemResponse
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
}

// WarrantyCheckResponse resultado público de la consulta de garantía.
type WarrantyCheckResponse struct {
	Product      string `json:"product"`
	SerialNumber string `json:"serial_number"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	IsValid      bool   `json:"isValid"`
}
