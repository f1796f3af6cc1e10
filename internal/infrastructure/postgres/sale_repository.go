package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `s.id, s.invoice_number, s.cashier_id, s.customer_id, s.subtotal_usd, s.discount_usd, s.total_usd,
	s.paid_usd, s.paid_khr, s.change_usd, s.change_khr, s.exchange_rate, s.payment_method, s.khqr_reference,
	s.status, s.notes, s.created_at, s.updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Create y NextInvoiceSequence deben usarse con una pgx.Tx (ver TxRunner).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y sus líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale, items []*entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, invoice_number, cashier_id, customer_id, subtotal_usd, discount_usd, total_usd,
			paid_usd, paid_khr, change_usd, change_khr, exchange_rate, payment_method, khqr_reference,
			status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		s.ID, s.InvoiceNumber, s.CashierID, s.CustomerID, s.SubtotalUSD, s.DiscountUSD, s.TotalUSD,
		s.PaidUSD, s.PaidKHR, s.ChangeUSD, s.ChangeKHR, s.ExchangeRate, s.PaymentMethod, s.KHQRReference,
		s.Status, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Invoice number already exists")
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, serial_item_id, quantity, unit_price, cost_price,
				discount, total, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, s.ID, it.ProductID, it.SerialItemID, it.Quantity, it.UnitPrice, it.CostPrice,
			it.Discount, it.Total, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListItems líneas de la venta con nombre/SKU del producto e identificadores de la unidad.
func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*repository.SaleItemRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, si.serial_item_id, si.quantity, si.unit_price, si.cost_price,
			si.discount, si.total, si.created_at,
			p.name, p.sku, u.imei, u.serial_number
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		LEFT JOIN serial_items u ON u.id = si.serial_item_id
		WHERE si.sale_id = $1
		ORDER BY si.created_at, si.id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var out []*repository.SaleItemRow
	for rows.Next() {
		var row repository.SaleItemRow
		it := &row.Item
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.SerialItemID, &it.Quantity, &it.UnitPrice, &it.CostPrice,
			&it.Discount, &it.Total, &it.CreatedAt,
			&row.ProductName, &row.SKU, &row.IMEI, &row.SerialNumber,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

// List ventas filtradas, más recientes primero, con el total de coincidencias.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*repository.SaleListRow, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.CashierID != "" {
		conds = append(conds, "s.cashier_id = "+arg(f.CashierID))
	}
	if f.PaymentMethod != "" {
		conds = append(conds, "s.payment_method = "+arg(f.PaymentMethod))
	}
	if f.From != nil {
		conds = append(conds, "s.created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "s.created_at <= "+arg(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `
		SELECT ` + saleColumns + `, COALESCE(u.full_name, ''),
			(SELECT COUNT(*) FROM sale_items si WHERE si.sale_id = s.id)
		FROM sales s
		LEFT JOIN users u ON u.id = s.cashier_id` + where + `
		ORDER BY s.created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*repository.SaleListRow
	for rows.Next() {
		var row repository.SaleListRow
		if err := rows.Scan(append(saleFields(&row.Sale), &row.CashierName, &row.ItemCount)...); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// NextInvoiceSequence toma un advisory lock de transacción para que dos ventas concurrentes
// no obtengan el mismo número. El lock se libera en el Commit/Rollback.
func (r *SaleRepo) NextInvoiceSequence(ctx context.Context, day time.Time) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('sales_invoice_number'))`); err != nil {
		return 0, fmt.Errorf("lock invoice sequence: %w", err)
	}
	prefix := "INV-" + day.Format("20060102") + "-%"
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE invoice_number LIKE $1`, prefix).Scan(&n); err != nil {
		return 0, fmt.Errorf("count daily invoices: %w", err)
	}
	return n + 1, nil
}

func (r *SaleRepo) SetInternalNotes(ctx context.Context, saleID, notes string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET internal_notes = $2, updated_at = NOW() WHERE id = $1`, saleID, notes)
	if err != nil {
		return fmt.Errorf("set internal notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkVoided cambia el estado solo desde completed; dos anulaciones concurrentes no pueden ganar ambas.
func (r *SaleRepo) MarkVoided(ctx context.Context, saleID, notes string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE sales SET status = 'voided', notes = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'completed'`, saleID, notes)
	if err != nil {
		return fmt.Errorf("void sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleVoided
	}
	return nil
}

func saleFields(s *entity.Sale) []any {
	return []any{
		&s.ID, &s.InvoiceNumber, &s.CashierID, &s.CustomerID, &s.SubtotalUSD, &s.DiscountUSD, &s.TotalUSD,
		&s.PaidUSD, &s.PaidKHR, &s.ChangeUSD, &s.ChangeKHR, &s.ExchangeRate, &s.PaymentMethod, &s.KHQRReference,
		&s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(saleFields(&s)...); err != nil {
		return nil, err
	}
	return &s, nil
}
