package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO brands (id, name, logo_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.LogoURL, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *BrandRepo) GetByName(ctx context.Context, name string) (*entity.Brand, error) {
	return r.getOne(ctx, `WHERE name = $1`, name)
}

func (r *BrandRepo) getOne(ctx context.Context, where string, arg any) (*entity.Brand, error) {
	b, err := scanBrand(r.q.QueryRow(ctx, `SELECT id, name, logo_url, is_active, created_at, updated_at FROM brands `+where, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE brands SET name = $2, logo_url = $3, is_active = $4, updated_at = $5
		WHERE id = $1`,
		b.ID, b.Name, b.LogoURL, b.IsActive, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BrandRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Brand, error) {
	query := `SELECT id, name, logo_url, is_active, created_at, updated_at FROM brands`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []*entity.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete elimina la marca; los productos que la referencian quedan con brand_id NULL (ON DELETE SET NULL).
func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBrand(row pgx.Row) (*entity.Brand, error) {
	var b entity.Brand
	if err := row.Scan(&b.ID, &b.Name, &b.LogoURL, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
