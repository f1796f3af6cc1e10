package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInactiveAccount   = errors.New("cuenta deshabilitada")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnitUnavailable   = errors.New("unidad serializada no disponible")
	ErrInsufficientPay   = errors.New("pago insuficiente")
	ErrCategoryInUse     = errors.New("la categoría tiene productos asociados")
	ErrNotSerialized     = errors.New("el producto no es serializado")
	ErrSaleVoided        = errors.New("la venta ya está anulada")
)

// ValidationError error de validación con mensaje para el cliente. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is permite comparar con ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// DuplicateError conflicto de unicidad con mensaje específico. errors.Is(err, ErrDuplicate) es true.
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// Is permite comparar con ErrDuplicate.
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Duplicate construye un DuplicateError.
func Duplicate(msg string) error { return &DuplicateError{Msg: msg} }
