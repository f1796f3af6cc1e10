package repository

import (
	"context"
	"time"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// SerialItemFilter filtro de listado de unidades.
type SerialItemFilter struct {
	ProductID string
	Status    string // vacío = todos
}

// SerialItemRepository define el puerto de persistencia para unidades serializadas (DIP).
type SerialItemRepository interface {
	Create(ctx context.Context, item *entity.SerialItem) error
	GetByID(ctx context.Context, id string) (*entity.SerialItem, error)
	// FindByIdentifier busca por IMEI o por número de serie.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.SerialItem, error)
	List(ctx context.Context, f SerialItemFilter) ([]*entity.SerialItem, error)
	// MarkSold pasa la unidad a sold solo si está in_stock; si no, devuelve domain.ErrUnitUnavailable.
	MarkSold(ctx context.Context, id, saleID string, soldAt time.Time) error
	// MarkInStock devuelve a in_stock la unidad atada a saleID; si no, devuelve domain.ErrUnitUnavailable.
	MarkInStock(ctx context.Context, id, saleID string) error
	// Update persiste estado, notas y costo de la unidad.
	Update(ctx context.Context, item *entity.SerialItem) error
}
