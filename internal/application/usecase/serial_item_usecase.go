package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// SerialItemUseCase alta y consulta de unidades serializadas (IMEI / número de serie).
type SerialItemUseCase struct {
	repo        repository.SerialItemRepository
	productRepo repository.ProductRepository
}

// NewSerialItemUseCase construye el caso de uso.
func NewSerialItemUseCase(repo repository.SerialItemRepository, productRepo repository.ProductRepository) *SerialItemUseCase {
	return &SerialItemUseCase{repo: repo, productRepo: productRepo}
}

// List devuelve las unidades. status vacío equivale a in_stock; "all" quita el filtro.
func (uc *SerialItemUseCase) List(ctx context.Context, productID, status string, showCost bool) ([]dto.SerialItemResponse, error) {
	switch status {
	case "":
		status = entity.SerialInStock
	case "all":
		status = ""
	}
	if productID != "" && CheckID(productID) != nil {
		return []dto.SerialItemResponse{}, nil
	}
	list, err := uc.repo.List(ctx, repository.SerialItemFilter{ProductID: productID, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerialItemResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSerialItemResponse(s, showCost))
	}
	return out, nil
}

// Create registra una unidad de un producto serializado.
func (uc *SerialItemUseCase) Create(ctx context.Context, in dto.SerialItemRequest) (*dto.SerialItemResponse, error) {
	product, err := uc.serializedProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	item, err := uc.create(ctx, product, dto.BulkSerialItemPayload{
		IMEI:         in.IMEI,
		SerialNumber: in.SerialNumber,
		CostPrice:    in.CostPrice,
		Notes:        in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return toSerialItemResponse(item, true), nil
}

// BulkCreate registra varias unidades de un mismo producto. Los errores se reportan por posición;
// devuelve ErrInvalidInput solo si no se creó ninguna.
func (uc *SerialItemUseCase) BulkCreate(ctx context.Context, in dto.BulkSerialItemRequest) (*dto.BulkSerialItemResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items are required")
	}
	product, err := uc.serializedProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	out := &dto.BulkSerialItemResponse{Created: []dto.SerialItemResponse{}}
	for i, payload := range in.Items {
		item, err := uc.create(ctx, product, payload)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrDuplicate) {
				return nil, err
			}
			out.Errors = append(out.Errors, dto.BulkItemError{Index: i, Message: err.Error()})
			continue
		}
		out.Created = append(out.Created, *toSerialItemResponse(item, true))
	}
	if len(out.Created) == 0 {
		return out, domain.Invalid("no serial items were created")
	}
	return out, nil
}

// GetByIMEI busca la unidad por IMEI exacto.
func (uc *SerialItemUseCase) GetByIMEI(ctx context.Context, imei string, showCost bool) (*dto.SerialItemDetailResponse, error) {
	if !entity.ValidIMEI(imei) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.FindByIdentifier(ctx, imei)
	if err != nil {
		return nil, err
	}
	if s == nil || s.IMEI == nil || *s.IMEI != imei {
		return nil, domain.ErrNotFound
	}
	out := &dto.SerialItemDetailResponse{SerialItemResponse: *toSerialItemResponse(s, showCost)}
	p, err := uc.productRepo.GetByID(ctx, s.ProductID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		out.ProductName, out.SKU = p.Name, p.SKU
	}
	return out, nil
}

// Update cambia estado, notas o costo. sold solo lo asigna una venta, y una unidad vendida
// solo puede pasar a returned.
func (uc *SerialItemUseCase) Update(ctx context.Context, id string, in dto.UpdateSerialItemRequest) (*dto.SerialItemResponse, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Status == entity.SerialSold && (in.Status == nil || *in.Status != entity.SerialReturned) {
		return nil, domain.Invalid("Cannot modify sold items")
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.SerialInStock, entity.SerialReturned, entity.SerialDefective:
			s.Status = *in.Status
		default:
			return nil, domain.Invalid("status must be in_stock, returned or defective")
		}
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.Invalid("cost_price cannot be negative")
		}
		s.CostPrice = decimal.NewNullDecimal(*in.CostPrice)
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSerialItemResponse(s, true), nil
}

func (uc *SerialItemUseCase) serializedProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id is required")
	}
	if CheckID(productID) != nil {
		return nil, domain.Invalid("Product not found")
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Invalid("Product not found")
	}
	if !p.IsSerialized {
		return nil, domain.ErrNotSerialized
	}
	return p, nil
}

func (uc *SerialItemUseCase) create(ctx context.Context, product *entity.Product, in dto.BulkSerialItemPayload) (*entity.SerialItem, error) {
	imei := trimPtr(in.IMEI)
	serial := trimPtr(in.SerialNumber)
	if imei == nil && serial == nil {
		return nil, domain.Invalid("IMEI or serial number is required")
	}
	if imei != nil {
		if !entity.ValidIMEI(*imei) {
			return nil, domain.Invalid("IMEI must be exactly 15 digits")
		}
		if err := uc.ensureFree(ctx, *imei, "IMEI already exists"); err != nil {
			return nil, err
		}
	}
	if serial != nil {
		if err := uc.ensureFree(ctx, *serial, "Serial number already exists"); err != nil {
			return nil, err
		}
	}
	cost := decimal.NewNullDecimal(product.CostPrice)
	if in.CostPrice != nil {
		cost = decimal.NewNullDecimal(*in.CostPrice)
	}
	now := time.Now()
	item := &entity.SerialItem{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		IMEI:         imei,
		SerialNumber: serial,
		Status:       entity.SerialInStock,
		CostPrice:    cost,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, duplicateAs(err, domain.Duplicate("IMEI or serial number already exists"))
	}
	return item, nil
}

// ensureFree: un identificador no puede repetirse ni como IMEI ni como número de serie.
func (uc *SerialItemUseCase) ensureFree(ctx context.Context, identifier, msg string) error {
	existing, err := uc.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.Duplicate(msg)
	}
	return nil
}

func toSerialItemResponse(s *entity.SerialItem, showCost bool) *dto.SerialItemResponse {
	out := &dto.SerialItemResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		IMEI:         s.IMEI,
		SerialNumber: s.SerialNumber,
		Status:       s.Status,
		SaleID:       s.SaleID,
		SoldAt:       s.SoldAt,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
	if showCost && s.CostPrice.Valid {
		cost := s.CostPrice.Decimal
		out.CostPrice = &cost
	}
	return out
}
