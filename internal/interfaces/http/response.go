package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
)

// ok responde 200 con el envelope de éxito.
func ok(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Success: true, Data: data})
}

// created responde 201 con el envelope de éxito.
func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Data: data})
}

// okWith responde 200 con datos y un mensaje.
func okWith(c *fiber.Ctx, data any, msg string) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Success: true, Data: data, Message: msg})
}

// okMessage responde 200 con solo un mensaje.
func okMessage(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Success: true, Message: msg})
}

// paged responde 200 con datos y metadatos de paginación.
func paged(c *fiber.Ctx, data any, page *dto.PageResponse) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Success: true, Data: data, Pagination: page})
}

// fail responde con el envelope de error.
func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.Envelope{Success: false, Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
}

// handleError traduce errores de dominio a status + envelope. Lo no reconocido es 500 con el mensaje del error.
func handleError(c *fiber.Ctx, err error) error {
	var (
		validation *domain.ValidationError
		duplicate  *domain.DuplicateError
	)
	switch {
	case errors.As(err, &validation):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", validation.Msg)
	case errors.As(err, &duplicate):
		return fail(c, fiber.StatusBadRequest, "DUPLICATE", duplicate.Msg)
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusBadRequest, "DUPLICATE", "Record already exists")
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", messageOr(err, domain.ErrInsufficientStock, "Insufficient stock"))
	case errors.Is(err, domain.ErrUnitUnavailable):
		return fail(c, fiber.StatusBadRequest, "UNIT_UNAVAILABLE", messageOr(err, domain.ErrUnitUnavailable, "Serial item is not available"))
	case errors.Is(err, domain.ErrInsufficientPay):
		return fail(c, fiber.StatusBadRequest, "INSUFFICIENT_PAYMENT", messageOr(err, domain.ErrInsufficientPay, "Insufficient payment"))
	case errors.Is(err, domain.ErrCategoryInUse):
		return fail(c, fiber.StatusBadRequest, "CATEGORY_IN_USE", "Cannot delete category with existing products")
	case errors.Is(err, domain.ErrSaleVoided):
		return fail(c, fiber.StatusBadRequest, "SALE_VOIDED", "Sale is already voided")
	case errors.Is(err, domain.ErrNotSerialized):
		return fail(c, fiber.StatusBadRequest, "NOT_SERIALIZED", "Product is not serialized")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "Invalid input")
	case errors.Is(err, domain.ErrInactiveAccount):
		return fail(c, fiber.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is disabled")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "Not found")
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("http: error inesperado")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

// messageOr devuelve def más el contexto que el caso de uso agregó al envolver sentinel
// ("stock insuficiente: iPhone (available 0)" → "Insufficient stock: iPhone (available 0)").
func messageOr(err, sentinel error, def string) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return def + msg[i+len(sentinel.Error()):]
	}
	return def
}

// ErrorHandler de Fiber: cualquier error que escape de un handler sale como envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, "HTTP_ERROR", fe.Message)
	}
	return handleError(c, err)
}
