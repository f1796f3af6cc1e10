package entity

import "time"

// Estados de garantía.
const (
	WarrantyActive  = "active"
	WarrantyExpired = "expired"
	WarrantyClaimed = "claimed"
	WarrantyVoided  = "voided"
)

// DefaultWarrantyTerms términos por defecto de la garantía del fabricante.
const DefaultWarrantyTerms = "Standard manufacturer warranty. Does not cover physical damage or water damage."

// Warranty garantía de una unidad vendida. StartDate y EndDate son fechas (sin hora).
type Warranty struct {
	ID             string
	SerialItemID   string
	SaleID         string
	StartDate      time.Time
	EndDate        time.Time
	DurationMonths int
	Terms          string
	Status         string
	ClaimNotes     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValid es función pura de la fecha actual: activa y con EndDate >= hoy.
func (w *Warranty) IsValid(now time.Time) bool {
	if w.Status != WarrantyActive {
		return false
	}
	return !DateOf(w.EndDate).Before(DateOf(now))
}

// WarrantyEnd calcula la fecha de fin sumando months a start.
func WarrantyEnd(start time.Time, months int) time.Time {
	return DateOf(start).AddDate(0, months, 0)
}

// DateOf trunca t a la medianoche UTC de su fecha de calendario.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
