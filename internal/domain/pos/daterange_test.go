package pos_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/domain/pos"
)

func TestParseDateRange_FinIncluyeTodoElDia(t *testing.T) {
	r, err := pos.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), r.End)

	assert.True(t, r.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRange_Vacio_SinFiltro(t *testing.T) {
	r, err := pos.ParseDateRange("", "")
	assert.NoError(t, err)
	assert.Nil(t, r)
}

func TestParseDateRange_Errores(t *testing.T) {
	_, err := pos.ParseDateRange("2024-01-01", "")
	assert.Error(t, err)

	_, err = pos.ParseDateRange("01/01/2024", "2024-01-31")
	assert.Error(t, err)

	_, err = pos.ParseDateRange("2024-02-01", "2024-01-31")
	assert.Error(t, err)
}

func TestInvoiceNumber(t *testing.T) {
	day := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-20240307-0001", pos.InvoiceNumber(day, 1))
	assert.Equal(t, "INV-20240307-0123", pos.InvoiceNumber(day, 123))
}
