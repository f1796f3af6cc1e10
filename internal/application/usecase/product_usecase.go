package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se indica.
const DefaultLowStockThreshold = 5

// columnas por las que se permite ordenar el catálogo
var productSortColumns = map[string]string{
	"name":          "name",
	"sku":           "sku",
	"selling_price": "selling_price",
	"quantity":      "quantity",
	"created_at":    "created_at",
}

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	serialRepo   repository.SerialItemRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	serialRepo repository.SerialItemRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, brandRepo: brandRepo, serialRepo: serialRepo}
}

// List busca productos. showCost controla si se expone cost_price; activeOnly se usa en el catálogo público.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery, showCost, activeOnly bool) (*dto.ProductListResponse, error) {
	q.Normalize()
	f := repository.ProductFilter{
		Search:     strings.TrimSpace(q.Search),
		CategoryID: q.CategoryID,
		BrandID:    q.BrandID,
		Condition:  q.Condition,
		LowStock:   q.LowStock,
		ActiveOnly: activeOnly,
		SortBy:     "name",
		Limit:      q.Limit,
		Offset:     q.Offset(),
	}
	if col, ok := productSortColumns[q.SortBy]; ok {
		f.SortBy = col
	}
	f.SortDesc = strings.EqualFold(q.SortOrder, "desc")
	if q.IsSerialized != "" {
		v, err := strconv.ParseBool(q.IsSerialized)
		if err != nil {
			return nil, domain.Invalid("is_serialized must be true or false")
		}
		f.IsSerialized = &v
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, showCost))
	}
	return &dto.ProductListResponse{Items: items, Page: *dto.NewPageResponse(q.PageRequest, total)}, nil
}

// GetDetail devuelve el producto con su categoría, marca y unidades en stock.
// activeOnly=true (ruta pública) trata a los productos inactivos como inexistentes.
func (uc *ProductUseCase) GetDetail(ctx context.Context, id string, showCost, activeOnly bool) (*dto.ProductDetailResponse, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (activeOnly && !p.IsActive) {
		return nil, domain.ErrNotFound
	}
	out := &dto.ProductDetailResponse{ProductResponse: *toProductResponse(p, showCost)}

	c, err := uc.categoryRepo.GetByID(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		out.Category = toCategoryResponse(c)
	}
	if p.BrandID != nil {
		b, err := uc.brandRepo.GetByID(ctx, *p.BrandID)
		if err != nil {
			return nil, err
		}
		if b != nil {
			out.Brand = toBrandResponse(b)
		}
	}
	if p.IsSerialized {
		units, err := uc.serialRepo.List(ctx, repository.SerialItemFilter{ProductID: p.ID, Status: entity.SerialInStock})
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			out.SerialItems = append(out.SerialItems, *toSerialItemResponse(u, showCost))
		}
	}
	return out, nil
}

// Create crea un producto. Los serializados arrancan con cantidad 0: su stock son las unidades.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if in.CategoryID == "" || name == "" || sku == "" {
		return nil, domain.Invalid("Category, name and SKU are required")
	}
	if err := uc.checkRefs(ctx, in.CategoryID, trimPtr(in.BrandID)); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errSKU
	}
	condition := in.Condition
	if condition == "" {
		condition = entity.ConditionNew
	}
	if err := validateProductValues(condition, in.CostPrice, in.SellingPrice, in.Quantity); err != nil {
		return nil, err
	}
	threshold := DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	qty := in.Quantity
	if in.IsSerialized {
		qty = 0
	}
	now := time.Now()
	p := &entity.Product{
		ID:                uuid.New().String(),
		CategoryID:        in.CategoryID,
		BrandID:           trimPtr(in.BrandID),
		Name:              name,
		NameKH:            strings.TrimSpace(in.NameKH),
		Model:             strings.TrimSpace(in.Model),
		SKU:               sku,
		Barcode:           trimPtr(in.Barcode),
		CostPrice:         in.CostPrice,
		SellingPrice:      in.SellingPrice,
		IsSerialized:      in.IsSerialized,
		Quantity:          qty,
		LowStockThreshold: threshold,
		StorageCapacity:   in.StorageCapacity,
		Color:             in.Color,
		Condition:         condition,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, duplicateAs(err, errSKU)
	}
	return toProductResponse(p, true), nil
}

// Update aplica cambios parciales. IsSerialized no cambia después de creado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.Invalid("SKU cannot be empty")
		}
		if sku != p.SKU {
			existing, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != p.ID {
				return nil, errSKU
			}
			p.SKU = sku
		}
	}
	if in.CategoryID != nil || in.BrandID != nil {
		catID := p.CategoryID
		if in.CategoryID != nil {
			catID = *in.CategoryID
		}
		brandID := p.BrandID
		if in.BrandID != nil {
			brandID = trimPtr(in.BrandID)
		}
		if err := uc.checkRefs(ctx, catID, brandID); err != nil {
			return nil, err
		}
		p.CategoryID, p.BrandID = catID, brandID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("Product name cannot be empty")
		}
		p.Name = name
	}
	applyString(&p.NameKH, in.NameKH)
	applyString(&p.Model, in.Model)
	applyString(&p.StorageCapacity, in.StorageCapacity)
	applyString(&p.Color, in.Color)
	applyString(&p.Condition, in.Condition)
	applyString(&p.Description, in.Description)
	applyString(&p.ImageURL, in.ImageURL)
	if in.Barcode != nil {
		p.Barcode = trimPtr(in.Barcode)
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.Quantity != nil && !p.IsSerialized {
		p.Quantity = *in.Quantity
	}
	if in.LowStockThreshold != nil {
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := validateProductValues(p.Condition, p.CostPrice, p.SellingPrice, p.Quantity); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, duplicateAs(err, errSKU)
	}
	return toProductResponse(p, true), nil
}

// Delete desactiva el producto (borrado lógico).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := CheckID(id); err != nil {
		return err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(ctx, id)
}

// LowStock productos no serializados activos con cantidad <= umbral.
func (uc *ProductUseCase) LowStock(ctx context.Context, showCost bool) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p, showCost))
	}
	return out, nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID string, brandID *string) error {
	if CheckID(categoryID) != nil {
		return domain.Invalid("Category not found")
	}
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Invalid("Category not found")
	}
	if brandID != nil {
		if CheckID(*brandID) != nil {
			return domain.Invalid("Brand not found")
		}
		b, err := uc.brandRepo.GetByID(ctx, *brandID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.Invalid("Brand not found")
		}
	}
	return nil
}

func validateProductValues(condition string, cost, price decimal.Decimal, qty int) error {
	if condition != entity.ConditionNew && condition != entity.ConditionSecondhand {
		return domain.Invalid("condition must be new or secondhand")
	}
	if cost.IsNegative() || price.IsNegative() {
		return domain.Invalid("prices cannot be negative")
	}
	if qty < 0 {
		return domain.Invalid("quantity cannot be negative")
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

var errSKU = domain.Duplicate("SKU already exists")

func toProductResponse(p *entity.Product, showCost bool) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:                p.ID,
		CategoryID:        p.CategoryID,
		BrandID:           p.BrandID,
		Name:              p.Name,
		NameKH:            p.NameKH,
		Model:             p.Model,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		SellingPrice:      p.SellingPrice,
		IsSerialized:      p.IsSerialized,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		StockStatus:       p.StockStatus(),
		StorageCapacity:   p.StorageCapacity,
		Color:             p.Color,
		Condition:         p.Condition,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if showCost {
		cost := p.CostPrice
		out.CostPrice = &cost
	}
	return out
}
