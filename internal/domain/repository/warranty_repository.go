package repository

import (
	"context"
	"time"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// WarrantyLookup garantía con la unidad y el nombre del producto al que pertenece.
type WarrantyLookup struct {
	Warranty    entity.Warranty
	Unit        entity.SerialItem
	ProductName string
}

// WarrantyRepository define el puerto de persistencia para garantías (DIP).
type WarrantyRepository interface {
	Create(ctx context.Context, w *entity.Warranty) error
	// FindByIdentifier busca la garantía más reciente de la unidad con ese IMEI o número de serie.
	FindByIdentifier(ctx context.Context, identifier string) (*WarrantyLookup, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.Warranty, error)
	// ExpireBefore marca como expired las garantías activas con end_date < day. Devuelve cuántas cambió.
	ExpireBefore(ctx context.Context, day time.Time) (int64, error)
	// VoidBySale anula la garantía emitida para la unidad en esa venta.
	VoidBySale(ctx context.Context, serialItemID, saleID string) (int64, error)
}
