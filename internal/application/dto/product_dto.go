package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CategoryID        string          `json:"category_id"`
	BrandID           *string         `json:"brand_id"`
	Name              string          `json:"name"`
	NameKH            string          `json:"name_kh"`
	Model             string          `json:"model"`
	SKU               string          `json:"sku"`
	Barcode           *string         `json:"barcode"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	IsSerialized      bool            `json:"is_serialized"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	StorageCapacity   string          `json:"storage_capacity"`
	Color             string          `json:"color"`
	Condition         string          `json:"condition"`
	Description       string          `json:"description"`
	ImageURL          string          `json:"image_url"`
}

// UpdateProductRequest cambios parciales de un producto.
type UpdateProductRequest struct {
	CategoryID        *string          `json:"category_id"`
	BrandID           *string          `json:"brand_id"`
	Name              *string          `json:"name"`
	NameKH            *string          `json:"name_kh"`
	Model             *string          `json:"model"`
	SKU               *string          `json:"sku"`
	Barcode           *string          `json:"barcode"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	Quantity          *int             `json:"quantity"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	StorageCapacity   *string          `json:"storage_capacity"`
	Color             *string          `json:"color"`
	Condition         *string          `json:"condition"`
	Description       *string          `json:"description"`
	ImageURL          *string          `json:"image_url"`
	IsActive          *bool            `json:"is_active"`
}

// ProductListQuery parámetros de búsqueda del catálogo.
type ProductListQuery struct {
	PageRequest
	Search       string `query:"search"`
	CategoryID   string `query:"category_id"`
	BrandID      string `query:"brand_id"`
	Condition    string `query:"condition"`
	IsSerialized string `query:"is_serialized"` // "true" | "false" | ""
	LowStock     bool   `query:"low_stock"`
	SortBy       string `query:"sort_by"`
	SortOrder    string `query:"sort_order"` // asc | desc
}

// ProductResponse salida de un producto. CostPrice es nil cuando el llamador no puede verlo.
type ProductResponse struct {
	ID                string           `json:"id"`
	CategoryID        string           `json:"category_id"`
	BrandID           *string          `json:"brand_id,omitempty"`
	Name              string           `json:"name"`
	NameKH            string           `json:"name_kh,omitempty"`
	Model             string           `json:"model,omitempty"`
	SKU               string           `json:"sku"`
	Barcode           *string          `json:"barcode,omitempty"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	IsSerialized      bool             `json:"is_serialized"`
	Quantity          int              `json:"quantity"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	StockStatus       string           `json:"stock_status"`
	StorageCapacity   string           `json:"storage_capacity,omitempty"`
	Color             string           `json:"color,omitempty"`
	Condition         string           `json:"condition"`
	Description       string           `json:"description,omitempty"`
	ImageURL          string           `json:"image_url,omitempty"`
	IsActive          bool             `json:"is_active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductDetailResponse producto con su categoría, marca y unidades disponibles.
type ProductDetailResponse struct {
	ProductResponse
	Category    *CategoryResponse    `json:"category,omitempty"`
	Brand       *BrandResponse       `json:"brand,omitempty"`
	SerialItems []SerialItemResponse `json:"serial_items,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
