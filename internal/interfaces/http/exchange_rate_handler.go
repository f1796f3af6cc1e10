package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

// ExchangeRateHandler tasa USD→KHR por día.
type ExchangeRateHandler struct {
	uc *usecase.ExchangeRateUseCase
}

// NewExchangeRateHandler construye el handler.
func NewExchangeRateHandler(uc *usecase.ExchangeRateUseCase) *ExchangeRateHandler {
	return &ExchangeRateHandler{uc: uc}
}

// List godoc
// @Summary      Últimas 30 tasas, fecha descendente
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ExchangeRateResponse}
// @Router       /api/settings/exchange-rate [get]
func (h *ExchangeRateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Set godoc
// @Summary      Fijar la tasa de un día (inserta o sobrescribe)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetExchangeRateRequest  true  "Tasa"
// @Success      200   {object}  dto.Envelope{data=dto.ExchangeRateResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/settings/exchange-rate [post]
func (h *ExchangeRateHandler) Set(c *fiber.Ctx) error {
	var in dto.SetExchangeRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Set(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// History godoc
// @Summary      Historial de tasas con quién las fijó
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás (máx. 365)"  default(30)
// @Success      200  {object}  dto.Envelope{data=[]dto.ExchangeRateResponse}
// @Router       /api/settings/exchange-rate/history [get]
func (h *ExchangeRateHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), c.QueryInt("days", usecase.DefaultHistoryDays))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Today godoc
// @Summary      Tasa vigente hoy (o la tasa por defecto)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/settings/exchange-rate/today [get]
func (h *ExchangeRateHandler) Today(c *fiber.Ctx) error {
	rate, err := h.uc.Today(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"usd_to_khr": rate})
}
