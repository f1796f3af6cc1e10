package dto

import "time"

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name         string `json:"name"`
	NameKH       string `json:"name_kh"`
	Description  string `json:"description"`
	IsSerialized bool   `json:"is_serialized"`
	IsActive     *bool  `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NameKH       string    `json:"name_kh,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsSerialized bool      `json:"is_serialized"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BrandRequest entrada para crear o actualizar una marca.
type BrandRequest struct {
	Name     string `json:"name"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
