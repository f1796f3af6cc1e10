package repository

import (
	"context"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo.
type ProductFilter struct {
	Search       string // ILIKE sobre name, sku, barcode, model
	CategoryID   string
	BrandID      string
	Condition    string
	IsSerialized *bool
	LowStock     bool // quantity <= low_stock_threshold (solo no serializados)
	ActiveOnly   bool
	SortBy       string // columna ya validada por la capa de aplicación
	SortDesc     bool
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Deactivate borrado lógico (is_active = false).
	Deactivate(ctx context.Context, id string) error
	// List devuelve la página pedida y el total de coincidencias.
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// DecrementStock descuenta qty solo si hay existencias suficientes; si no, devuelve domain.ErrInsufficientStock.
	DecrementStock(ctx context.Context, productID string, qty int) error
	// IncrementStock devuelve qty unidades al inventario (anulación de venta).
	IncrementStock(ctx context.Context, productID string, qty int) error
}
