package sales

import (
	"context"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la venta, las unidades vendidas, las garantías y el stock se confirmen juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		serialRepo repository.SerialItemRepository,
		saleRepo repository.SaleRepository,
		warrantyRepo repository.WarrantyRepository,
	) error) error
}

// ReceiptRenderer genera el comprobante imprimible de una venta.
type ReceiptRenderer interface {
	RenderReceipt(shopName string, sale *dto.SaleResponse) ([]byte, error)
}
