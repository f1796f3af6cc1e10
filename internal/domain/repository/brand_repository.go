package repository

import (
	"context"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand (DIP).
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Brand, error)
	Delete(ctx context.Context, id string) error
}
