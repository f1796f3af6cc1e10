package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

// PublicHandler catálogo de solo lectura sin autenticación: solo registros activos y sin cost_price.
type PublicHandler struct {
	categories *usecase.CategoryUseCase
	brands     *usecase.BrandUseCase
	products   *usecase.ProductUseCase
	warranties *usecase.WarrantyUseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(
	categories *usecase.CategoryUseCase,
	brands *usecase.BrandUseCase,
	products *usecase.ProductUseCase,
	warranties *usecase.WarrantyUseCase,
) *PublicHandler {
	return &PublicHandler{categories: categories, brands: brands, products: products, warranties: warranties}
}

// Categories godoc
// @Summary      Categorías activas
// @Tags         public
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.CategoryResponse}
// @Router       /api/public/categories [get]
func (h *PublicHandler) Categories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext(), true)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Brands godoc
// @Summary      Marcas activas
// @Tags         public
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.BrandResponse}
// @Router       /api/public/brands [get]
func (h *PublicHandler) Brands(c *fiber.Ctx) error {
	out, err := h.brands.List(c.UserContext(), true)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Products godoc
// @Summary      Productos activos (sin costo)
// @Tags         public
// @Produce      json
// @Param        search       query  string  false  "Búsqueda"
// @Param        category_id  query  string  false  "Categoría"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/public/products [get]
func (h *PublicHandler) Products(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
	}
	out, err := h.products.List(c.UserContext(), q, false, true)
	if err != nil {
		return handleError(c, err)
	}
	return paged(c, out.Items, &out.Page)
}

// Product godoc
// @Summary      Detalle público de producto (nunca incluye cost_price)
// @Tags         public
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductDetailResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/public/products/{id} [get]
func (h *PublicHandler) Product(c *fiber.Ctx) error {
	out, err := h.products.GetDetail(c.UserContext(), c.Params("id"), false, true)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// WarrantyCheck godoc
// @Summary      Consultar garantía por IMEI o número de serie
// @Tags         public
// @Produce      json
// @Param        serial  path  string  true  "IMEI o número de serie"
// @Success      200  {object}  dto.Envelope{data=dto.WarrantyCheckResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/public/warranty/check/{serial} [get]
func (h *PublicHandler) WarrantyCheck(c *fiber.Ctx) error {
	out, err := h.warranties.Check(c.UserContext(), c.Params("serial"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}
