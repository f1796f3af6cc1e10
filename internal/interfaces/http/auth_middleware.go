package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/domain"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalIdentity = "identity"
)

// TokenVerifier resuelve un token a una identidad activa. Lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthMiddleware valida el Bearer Token y carga la identidad en c.Locals.
// Token ausente, malformado, expirado o de un usuario inexistente/inactivo → 401.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Format: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Empty token")
		}
		id, err := verifier.Verify(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			}
			return handleError(c, err)
		}
		c.Locals(LocalIdentity, id)
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol de la identidad está en roles (auth.Authorize).
// Debe ir después de AuthMiddleware: sin identidad o sin rol en el contexto responde 401.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil || id.Role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Role not found in session")
		}
		if !auth.Authorize(id, roles...) {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetIdentity devuelve la identidad completa o nil en rutas públicas.
func GetIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(LocalIdentity).(*auth.Identity)
	return id
}
