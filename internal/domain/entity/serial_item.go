package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una unidad serializada.
const (
	SerialInStock   = "in_stock"
	SerialSold      = "sold"
	SerialReturned  = "returned"
	SerialDefective = "defective"
)

var imeiPattern = regexp.MustCompile(`^[0-9]{15}$`)

// SerialItem unidad física de un producto identificada por IMEI y/o número de serie.
// Cada IMEI y cada número de serie es único en todo el sistema.
type SerialItem struct {
	ID           string
	ProductID    string
	IMEI         *string
	SerialNumber *string
	Status       string
	SaleID       *string
	SoldAt       *time.Time
	CostPrice    decimal.NullDecimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identifier devuelve el número de serie o, si no existe, el IMEI.
func (s *SerialItem) Identifier() string {
	if s.SerialNumber != nil && *s.SerialNumber != "" {
		return *s.SerialNumber
	}
	if s.IMEI != nil {
		return *s.IMEI
	}
	return ""
}

// ValidIMEI indica si imei tiene exactamente 15 dígitos.
func ValidIMEI(imei string) bool {
	return imeiPattern.MatchString(imei)
}
