package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/sales"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/metrics"
)

// SaleHandler ventas del punto de venta.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una venta (cobro USD + KHR, garantías, stock)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.Envelope{data=dto.SaleResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	metrics.RecordSale(out.PaymentMethod, out.TotalUSD)
	return created(c, out)
}

// List godoc
// @Summary      Listar ventas (los cajeros solo ven las propias)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date      query  string  false  "YYYY-MM-DD"
// @Param        end_date        query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        cashier_id      query  string  false  "Cajero"
// @Param        payment_method  query  string  false  "cash | card | khqr | split"
// @Param        page            query  int     false  "Página"  default(1)
// @Param        limit           query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.Envelope{data=[]dto.SaleResponse}
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
	}
	out, page, err := h.uc.List(c.UserContext(), GetUserID(c), GetRole(c), q)
	if err != nil {
		return handleError(c, err)
	}
	return paged(c, out, page)
}

// GetByID godoc
// @Summary      Detalle de venta con líneas y garantías
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Envelope{data=dto.SaleResponse}
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Receipt godoc
// @Summary      Recibo de la venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Receipt(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// SetNotes godoc
// @Summary      Guardar notas internas de la venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la venta"
// @Param        body  body  dto.SaleNotesRequest  true  "Notas"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/sales/{id}/notes [patch]
func (h *SaleHandler) SetNotes(c *fiber.Ctx) error {
	var in dto.SaleNotesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetInternalNotes(c.UserContext(), c.Params("id"), in.InternalNotes); err != nil {
		return handleError(c, err)
	}
	return okMessage(c, "Notes saved")
}

// Void godoc
// @Summary      Anular una venta (repone stock, libera unidades y anula garantías)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id}/void [post]
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	metrics.RecordVoid()
	return okMessage(c, "Sale voided successfully")
}
