package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

// SerialItemHandler unidades serializadas (IMEI / número de serie).
type SerialItemHandler struct {
	uc *usecase.SerialItemUseCase
}

// NewSerialItemHandler construye el handler.
func NewSerialItemHandler(uc *usecase.SerialItemUseCase) *SerialItemHandler {
	return &SerialItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades de un producto
// @Tags         serial-items
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        status      query  string  false  "in_stock (defecto) | sold | returned | defective | all"
// @Success      200  {object}  dto.Envelope{data=[]dto.SerialItemResponse}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/serial-items [get]
func (h *SerialItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("product_id"), c.Query("status"), usecase.CanSeeCost(GetRole(c)))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Registrar una unidad
// @Tags         serial-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SerialItemRequest  true  "Unidad"
// @Success      201   {object}  dto.Envelope{data=dto.SerialItemResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/serial-items [post]
func (h *SerialItemHandler) Create(c *fiber.Ctx) error {
	var in dto.SerialItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, out)
}

// BulkCreate godoc
// @Summary      Registrar varias unidades de un producto
// @Description  Los errores por ítem se devuelven en errors; 400 solo si no se creó ninguna.
// @Tags         serial-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkSerialItemRequest  true  "Unidades"
// @Success      201   {object}  dto.Envelope{data=dto.BulkSerialItemResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/serial-items/bulk [post]
func (h *SerialItemHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkSerialItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkCreate(c.UserContext(), in)
	if err != nil {
		if out != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
				Success: false, Code: "VALIDATION", Message: err.Error(), Data: out,
			})
		}
		return handleError(c, err)
	}
	return created(c, out)
}

// GetByIMEI godoc
// @Summary      Buscar una unidad por IMEI
// @Tags         serial-items
// @Security     Bearer
// @Produce      json
// @Param        imei  path  string  true  "IMEI (15 dígitos)"
// @Success      200   {object}  dto.Envelope{data=dto.SerialItemDetailResponse}
// @Failure      404   {object}  dto.Envelope
// @Router       /api/serial-items/imei/{imei} [get]
func (h *SerialItemHandler) GetByIMEI(c *fiber.Ctx) error {
	out, err := h.uc.GetByIMEI(c.UserContext(), c.Params("imei"), usecase.CanSeeCost(GetRole(c)))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Cambiar estado, notas o costo de una unidad
// @Description  Único camino para marcar una unidad como returned o defective. Una unidad vendida solo admite status=returned.
// @Tags         serial-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la unidad"
// @Param        body  body  dto.UpdateSerialItemRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope{data=dto.SerialItemResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/serial-items/{id} [patch]
func (h *SerialItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSerialItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return okWith(c, out, "Serial item updated successfully")
}
