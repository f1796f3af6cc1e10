package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/application/dto"
)

// AuthHandler maneja login, perfil e inicialización del administrador.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login (username + password)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "Username and password are required")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// UpdateProfile godoc
// @Summary      Actualizar nombre o contraseña propios
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// Init godoc
// @Summary      Crear el administrador por defecto si no hay usuarios
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.InitResponse}
// @Router       /api/init [get]
func (h *AuthHandler) Init(c *fiber.Ctx) error {
	out, err := h.uc.InitAdmin(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}
