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

// BrandUseCase casos de uso CRUD para marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// List devuelve las marcas ordenadas por nombre.
func (uc *BrandUseCase) List(ctx context.Context, activeOnly bool) ([]dto.BrandResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// Create crea una marca con nombre único.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("Brand name is required")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errBrandName
	}
	now := time.Now()
	b := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      name,
		LogoURL:   strings.TrimSpace(in.LogoURL),
		IsActive:  boolOr(in.IsActive, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, duplicateAs(err, errBrandName)
	}
	return toBrandResponse(b), nil
}

// Update modifica una marca.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.BrandRequest) (*dto.BrandResponse, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" && name != b.Name {
		existing, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != b.ID {
			return nil, errBrandName
		}
		b.Name = name
	}
	b.LogoURL = strings.TrimSpace(in.LogoURL)
	b.IsActive = boolOr(in.IsActive, b.IsActive)
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, duplicateAs(err, errBrandName)
	}
	return toBrandResponse(b), nil
}

// Delete elimina una marca. Los productos quedan sin marca (FK ON DELETE SET NULL).
func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	if err := CheckID(id); err != nil {
		return err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

var errBrandName = domain.Duplicate("Brand name already exists")

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		LogoURL:   b.LogoURL,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
