package dto

// MigrationInfo descripción estática de una migración nombrada.
type MigrationInfo struct {
	Migration   string `json:"migration"`
	Table       string `json:"table"`
	Column      string `json:"column"`
	Description string `json:"description"`
	Method      string `json:"method"`
}

// MigrationResult resultado de aplicar una migración nombrada.
type MigrationResult struct {
	Migration string `json:"migration"`
	Table     string `json:"table"`
	Column    string `json:"column"`
	Applied   bool   `json:"applied"`
}
