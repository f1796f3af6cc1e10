package repository

import "context"

// SchemaRepository cambios de esquema aditivos e idempotentes (DIP).
type SchemaRepository interface {
	// EnsureColumn agrega la columna si no existe. applied=false si ya estaba.
	EnsureColumn(ctx context.Context, table, column, definition string) (applied bool, err error)
}
