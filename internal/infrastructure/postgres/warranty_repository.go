package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.WarrantyRepository = (*WarrantyRepo)(nil)

// WarrantyRepo implementación del puerto WarrantyRepository sobre PostgreSQL.
type WarrantyRepo struct {
	q Querier
}

// NewWarrantyRepository construye el adaptador de persistencia para garantías.
func NewWarrantyRepository(q Querier) *WarrantyRepo {
	return &WarrantyRepo{q: q}
}

func (r *WarrantyRepo) Create(ctx context.Context, w *entity.Warranty) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warranties (id, serial_item_id, sale_id, start_date, end_date, duration_months, terms, status,
			claim_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		w.ID, w.SerialItemID, w.SaleID, w.StartDate, w.EndDate, w.DurationMonths, w.Terms, w.Status,
		w.ClaimNotes, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warranty: %w", err)
	}
	return nil
}

// FindByIdentifier devuelve la garantía más reciente de la unidad identificada por IMEI o número de serie.
func (r *WarrantyRepo) FindByIdentifier(ctx context.Context, identifier string) (*repository.WarrantyLookup, error) {
	query := `
		SELECT w.id, w.serial_item_id, w.sale_id, w.start_date, w.end_date, w.duration_months, w.terms, w.status,
			w.claim_notes, w.created_at, w.updated_at,
			si.id, si.product_id, si.imei, si.serial_number, si.status,
			p.name
		FROM warranties w
		JOIN serial_items si ON si.id = w.serial_item_id
		JOIN products p ON p.id = si.product_id
		WHERE si.imei = $1 OR si.serial_number = $1
		ORDER BY w.start_date DESC, w.created_at DESC
		LIMIT 1`
	var l repository.WarrantyLookup
	w, u := &l.Warranty, &l.Unit
	err := r.q.QueryRow(ctx, query, identifier).Scan(
		&w.ID, &w.SerialItemID, &w.SaleID, &w.StartDate, &w.EndDate, &w.DurationMonths, &w.Terms, &w.Status,
		&w.ClaimNotes, &w.CreatedAt, &w.UpdatedAt,
		&u.ID, &u.ProductID, &u.IMEI, &u.SerialNumber, &u.Status,
		&l.ProductName,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find warranty: %w", err)
	}
	return &l, nil
}

func (r *WarrantyRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.Warranty, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, serial_item_id, sale_id, start_date, end_date, duration_months, terms, status,
			claim_notes, created_at, updated_at
		FROM warranties WHERE sale_id = $1 ORDER BY created_at`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list warranties: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warranty
	for rows.Next() {
		var w entity.Warranty
		if err := rows.Scan(
			&w.ID, &w.SerialItemID, &w.SaleID, &w.StartDate, &w.EndDate, &w.DurationMonths, &w.Terms, &w.Status,
			&w.ClaimNotes, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warranty: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// ExpireBefore pasa a expired las garantías activas vencidas antes de day.
func (r *WarrantyRepo) ExpireBefore(ctx context.Context, day time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE warranties SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date < $1`, entity.DateOf(day))
	if err != nil {
		return 0, fmt.Errorf("expire warranties: %w", err)
	}
	return tag.RowsAffected(), nil
}

// VoidBySale anula la garantía de la unidad emitida en esa venta, sin importar su estado actual.
func (r *WarrantyRepo) VoidBySale(ctx context.Context, serialItemID, saleID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE warranties SET status = 'voided', updated_at = NOW()
		WHERE serial_item_id = $1 AND sale_id = $2`, serialItemID, saleID)
	if err != nil {
		return 0, fmt.Errorf("void warranties: %w", err)
	}
	return tag.RowsAffected(), nil
}
