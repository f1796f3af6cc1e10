package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/myshop-pos/internal/domain"
)

func TestInvalid_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear producto: %w", domain.Invalid("sku es requerido"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrDuplicate))
	assert.Contains(t, err.Error(), "sku es requerido")
}

func TestDuplicate_EsErrDuplicate(t *testing.T) {
	err := domain.Duplicate("el nombre de categoría ya existe")
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, "el nombre de categoría ya existe", err.Error())
}
