package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve las categorías ordenadas por nombre. activeOnly para las rutas públicas.
func (uc *CategoryUseCase) List(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Create crea una categoría. El nombre debe ser único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("Category name is required")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errCategoryName
	}
	now := time.Now()
	c := &entity.Category{
		ID:           uuid.New().String(),
		Name:         name,
		NameKH:       strings.TrimSpace(in.NameKH),
		Description:  in.Description,
		IsSerialized: in.IsSerialized,
		IsActive:     boolOr(in.IsActive, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, duplicateAs(err, errCategoryName)
	}
	return toCategoryResponse(c), nil
}

// Update modifica una categoría manteniendo la unicidad del nombre.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" && name != c.Name {
		existing, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != c.ID {
			return nil, errCategoryName
		}
		c.Name = name
	}
	c.NameKH = strings.TrimSpace(in.NameKH)
	c.Description = in.Description
	c.IsSerialized = in.IsSerialized
	c.IsActive = boolOr(in.IsActive, c.IsActive)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, duplicateAs(err, errCategoryName)
	}
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría sin productos asociados.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := CheckID(id); err != nil {
		return err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.repo.Delete(ctx, id)
}

var errCategoryName = domain.Duplicate("Category name already exists")

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		NameKH:       c.NameKH,
		Description:  c.Description,
		IsSerialized: c.IsSerialized,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
