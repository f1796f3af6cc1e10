package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

// MigrateHandler cambios de columna con nombre, aplicados a mano.
type MigrateHandler struct {
	uc *usecase.MigrationUseCase
}

// NewMigrateHandler construye el handler.
func NewMigrateHandler(uc *usecase.MigrationUseCase) *MigrateHandler {
	return &MigrateHandler{uc: uc}
}

// List godoc
// @Summary      Migraciones con nombre disponibles
// @Tags         migrate
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]string}
// @Router       /api/migrate [get]
func (h *MigrateHandler) List(c *fiber.Ctx) error {
	return ok(c, h.uc.Names())
}

// Describe godoc
// @Summary      Descripción de una migración con nombre
// @Tags         migrate
// @Produce      json
// @Param        name  path  string  true  "notes | telegram"
// @Success      200  {object}  dto.Envelope{data=dto.MigrationInfo}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/migrate/{name} [get]
func (h *MigrateHandler) Describe(c *fiber.Ctx) error {
	out, err := h.uc.Describe(c.Params("name"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Apply godoc
// @Summary      Aplicar una migración con nombre (idempotente)
// @Description  Relleno para bases creadas antes de las migraciones versionadas; con 000002 aplicada responde applied=false.
// @Tags         migrate
// @Produce      json
// @Param        name  path  string  true  "notes | telegram"
// @Success      200  {object}  dto.Envelope{data=dto.MigrationResult}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/migrate/{name} [post]
func (h *MigrateHandler) Apply(c *fiber.Ctx) error {
	out, err := h.uc.Apply(c.UserContext(), c.Params("name"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}
