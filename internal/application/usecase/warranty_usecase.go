package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/pos"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// WarrantyUseCase consulta pública de garantías y expiración periódica.
type WarrantyUseCase struct {
	repo repository.WarrantyRepository
	now  func() time.Time
}

// NewWarrantyUseCase construye el caso de uso.
func NewWarrantyUseCase(repo repository.WarrantyRepository) *WarrantyUseCase {
	return &WarrantyUseCase{repo: repo, now: time.Now}
}

// Check busca la garantía por IMEI o número de serie.
func (uc *WarrantyUseCase) Check(ctx context.Context, identifier string) (*dto.WarrantyCheckResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.Invalid("serial number or IMEI is required")
	}
	found, err := uc.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	w := found.Warranty
	return &dto.WarrantyCheckResponse{
		Product:      found.ProductName,
		SerialNumber: found.Unit.Identifier(),
		StartDate:    w.StartDate.Format(pos.DateLayout),
		EndDate:      w.EndDate.Format(pos.DateLayout),
		Status:       w.Status,
		IsValid:      w.IsValid(uc.now()),
	}, nil
}

// ExpireOverdue marca como expiradas las garantías activas vencidas antes de hoy.
func (uc *WarrantyUseCase) ExpireOverdue(ctx context.Context) (int64, error) {
	return uc.repo.ExpireBefore(ctx, entity.DateOf(uc.now()))
}
