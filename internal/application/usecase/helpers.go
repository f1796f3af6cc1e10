package usecase

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// duplicateAs reemplaza un ErrDuplicate genérico del repositorio por un error con mensaje de negocio.
// Si el repositorio ya devolvió un DuplicateError con mensaje propio, se respeta.
func duplicateAs(err, dup error) error {
	var specific *domain.DuplicateError
	if errors.As(err, &specific) {
		return err
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return dup
	}
	return err
}

// CanSeeCost indica si el rol puede ver precios de costo.
func CanSeeCost(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleManager
}

// trimPtr normaliza un puntero a string: nil si queda vacío.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// CheckID rechaza claves que no son UUID antes de llegar a la base: un id mal formado no existe.
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return nil
}
