package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
// cost_price solo se expone a admin y manager.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos con búsqueda, filtros y paginación
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Nombre, SKU, código de barras o modelo"
// @Param        category_id    query  string  false  "Categoría"
// @Param        brand_id       query  string  false  "Marca"
// @Param        condition      query  string  false  "new | secondhand"
// @Param        is_serialized  query  string  false  "true | false"
// @Param        low_stock      query  bool    false  "Solo stock bajo"
// @Param        sort_by        query  string  false  "name | sku | selling_price | quantity | created_at"
// @Param        sort_order     query  string  false  "asc | desc"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
	}
	out, err := h.uc.List(c.UserContext(), q, usecase.CanSeeCost(GetRole(c)), false)
	if err != nil {
		return handleError(c, err)
	}
	return paged(c, out.Items, &out.Page)
}

// GetByID godoc
// @Summary      Detalle de producto con categoría, marca y unidades en stock
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductDetailResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.UserContext(), c.Params("id"), usecase.CanSeeCost(GetRole(c)), false)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// LowStock godoc
// @Summary      Productos en o por debajo del umbral de stock
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), usecase.CanSeeCost(GetRole(c)))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Desactivar producto (borrado lógico)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return okMessage(c, "Product deactivated")
}
