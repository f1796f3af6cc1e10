package entity

import "time"

// Brand marca comercial. Name es único.
type Brand struct {
	ID        string
	Name      string
	LogoURL   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
