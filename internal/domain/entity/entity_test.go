package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWarranty_IsValid_HastaElUltimoDia(t *testing.T) {
	w := entity.Warranty{Status: entity.WarrantyActive, EndDate: date(2024, 6, 30)}

	assert.True(t, w.IsValid(time.Date(2024, 6, 29, 12, 0, 0, 0, time.UTC)))
	assert.True(t, w.IsValid(time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)), "el día de fin sigue vigente")
	assert.False(t, w.IsValid(date(2024, 7, 1)))
}

func TestWarranty_IsValid_EstadoNoActivo(t *testing.T) {
	w := entity.Warranty{Status: entity.WarrantyClaimed, EndDate: date(2030, 1, 1)}
	assert.False(t, w.IsValid(date(2024, 1, 1)))
}

func TestWarrantyEnd_SumaMeses(t *testing.T) {
	start := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2025, 1, 15), entity.WarrantyEnd(start, 12))
}

func TestProduct_StockStatus(t *testing.T) {
	cases := map[string]entity.Product{
		entity.StockSerialized: {IsSerialized: true, Quantity: 10},
		entity.StockOut:        {Quantity: 0, LowStockThreshold: 5},
		entity.StockLow:        {Quantity: 5, LowStockThreshold: 5},
		entity.StockIn:         {Quantity: 6, LowStockThreshold: 5},
	}
	for want, p := range cases {
		p := p
		assert.Equal(t, want, p.StockStatus())
	}
}

func TestValidIMEI(t *testing.T) {
	assert.True(t, entity.ValidIMEI("123456789012345"))
	assert.False(t, entity.ValidIMEI("12345678901234"))
	assert.False(t, entity.ValidIMEI("12345678901234A"))
}

func TestSerialItem_Identifier_PrefiereSerie(t *testing.T) {
	imei := "123456789012345"
	serial := "SN-001"

	assert.Equal(t, "SN-001", (&entity.SerialItem{IMEI: &imei, SerialNumber: &serial}).Identifier())
	assert.Equal(t, imei, (&entity.SerialItem{IMEI: &imei}).Identifier())
	assert.Equal(t, "", (&entity.SerialItem{}).Identifier())
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, entity.IsValidRole("cashier"))
	assert.False(t, entity.IsValidRole("vendedor"))
}
