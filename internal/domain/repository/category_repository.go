package repository

import (
	"context"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// List ordena por nombre ascendente; activeOnly filtra is_active = true.
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	CountProducts(ctx context.Context, categoryID string) (int, error)
	Delete(ctx context.Context, id string) error
}
