package repository

import (
	"context"
	"time"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// SaleFilter filtro de listado de ventas. From/To inclusivos.
type SaleFilter struct {
	CashierID     string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// SaleListRow venta con el nombre del cajero y la cantidad de líneas.
type SaleListRow struct {
	Sale        entity.Sale
	CashierName string
	ItemCount   int
}

// SaleItemRow línea de venta con datos del producto y de la unidad vendida.
type SaleItemRow struct {
	Item         entity.SaleItem
	ProductName  string
	SKU          string
	IMEI         *string
	SerialNumber *string
}

// SaleRepository define el puerto de persistencia para ventas (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID string) ([]*SaleItemRow, error)
	List(ctx context.Context, f SaleFilter) ([]*SaleListRow, int, error)
	// NextInvoiceSequence devuelve ventas del día + 1, serializando a los emisores concurrentes dentro de la tx.
	NextInvoiceSequence(ctx context.Context, day time.Time) (int, error)
	// SetInternalNotes actualiza sales.internal_notes (columna agregada por la migración "notes").
	SetInternalNotes(ctx context.Context, saleID, notes string) error
	// MarkVoided pasa la venta de completed a voided con las notas dadas; si ya no está completed devuelve domain.ErrSaleVoided.
	MarkVoided(ctx context.Context, saleID, notes string) error
}
