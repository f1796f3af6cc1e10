package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.SerialItemRepository = (*SerialItemRepo)(nil)

const serialItemColumns = `id, product_id, imei, serial_number, status, sale_id, sold_at, cost_price, notes, created_at, updated_at`

// SerialItemRepo implementación del puerto SerialItemRepository sobre PostgreSQL.
type SerialItemRepo struct {
	q Querier
}

// NewSerialItemRepository construye el adaptador de persistencia para unidades serializadas.
func NewSerialItemRepository(q Querier) *SerialItemRepo {
	return &SerialItemRepo{q: q}
}

func (r *SerialItemRepo) Create(ctx context.Context, s *entity.SerialItem) error {
	query := `
		INSERT INTO serial_items (` + serialItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.IMEI, s.SerialNumber, s.Status, s.SaleID, s.SoldAt, s.CostPrice, s.Notes,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			switch violatedConstraint(err) {
			case "serial_items_imei_key":
				return domain.Duplicate("IMEI already exists")
			case "serial_items_serial_number_key":
				return domain.Duplicate("Serial number already exists")
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert serial item: %w", err)
	}
	return nil
}

func (r *SerialItemRepo) GetByID(ctx context.Context, id string) (*entity.SerialItem, error) {
	s, err := scanSerialItem(r.q.QueryRow(ctx, `SELECT `+serialItemColumns+` FROM serial_items WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial item: %w", err)
	}
	return s, nil
}

// FindByIdentifier busca la unidad cuyo IMEI o número de serie coincide con identifier.
func (r *SerialItemRepo) FindByIdentifier(ctx context.Context, identifier string) (*entity.SerialItem, error) {
	s, err := scanSerialItem(r.q.QueryRow(ctx, `
		SELECT `+serialItemColumns+` FROM serial_items
		WHERE imei = $1 OR serial_number = $1
		LIMIT 1`, identifier))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find serial item: %w", err)
	}
	return s, nil
}

func (r *SerialItemRepo) List(ctx context.Context, f repository.SerialItemFilter) ([]*entity.SerialItem, error) {
	query := `SELECT ` + serialItemColumns + ` FROM serial_items WHERE TRUE`
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += fmt.Sprintf(` AND product_id = $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list serial items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SerialItem
	for rows.Next() {
		s, err := scanSerialItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan serial item: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MarkSold cambia el estado solo desde in_stock; dos ventas concurrentes de la misma unidad no pueden ganar ambas.
func (r *SerialItemRepo) MarkSold(ctx context.Context, id, saleID string, soldAt time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE serial_items SET status = 'sold', sale_id = $2, sold_at = $3, updated_at = $3
		WHERE id = $1 AND status = 'in_stock'`, id, saleID, soldAt)
	if err != nil {
		return fmt.Errorf("mark serial item sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnitUnavailable
	}
	return nil
}

// MarkInStock revierte MarkSold solo si la unidad sigue atada a esa venta.
func (r *SerialItemRepo) MarkInStock(ctx context.Context, id, saleID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE serial_items SET status = 'in_stock', sale_id = NULL, sold_at = NULL, updated_at = NOW()
		WHERE id = $1 AND sale_id = $2`, id, saleID)
	if err != nil {
		return fmt.Errorf("mark serial item in stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnitUnavailable
	}
	return nil
}

func (r *SerialItemRepo) Update(ctx context.Context, s *entity.SerialItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE serial_items SET status = $2, cost_price = $3, notes = $4, updated_at = $5
		WHERE id = $1`, s.ID, s.Status, s.CostPrice, s.Notes, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update serial item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSerialItem(row pgx.Row) (*entity.SerialItem, error) {
	var s entity.SerialItem
	err := row.Scan(
		&s.ID, &s.ProductID, &s.IMEI, &s.SerialNumber, &s.Status, &s.SaleID, &s.SoldAt, &s.CostPrice, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
