package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones de producto.
const (
	ConditionNew        = "new"
	ConditionSecondhand = "secondhand"
)

// Estados de stock derivados.
const (
	StockSerialized = "serialized"
	StockOut        = "out_of_stock"
	StockLow        = "low_stock"
	StockIn         = "in_stock"
)

// Product representa un artículo del catálogo.
// Los productos serializados llevan stock por unidad (SerialItem); Quantity queda en 0.
type Product struct {
	ID                string
	CategoryID        string
	BrandID           *string
	Name              string
	NameKH            string
	Model             string
	SKU               string  // único
	Barcode           *string // único si existe
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	IsSerialized      bool
	Quantity          int
	LowStockThreshold int
	StorageCapacity   string
	Color             string
	Condition         string // new, secondhand
	Description       string
	ImageURL          string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockStatus clasifica el stock del producto.
func (p *Product) StockStatus() string {
	if p.IsSerialized {
		return StockSerialized
	}
	if p.Quantity <= 0 {
		return StockOut
	}
	if p.Quantity <= p.LowStockThreshold {
		return StockLow
	}
	return StockIn
}
