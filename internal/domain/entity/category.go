package entity

import "time"

// Category agrupa productos. Name es único entre categorías.
type Category struct {
	ID           string
	Name         string
	NameKH       string // nombre en jemer
	Description  string
	IsSerialized bool // sugerencia para productos nuevos de la categoría
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
