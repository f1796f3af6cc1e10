package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.SchemaRepository = (*SchemaRepo)(nil)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SchemaRepo aplica cambios de esquema aditivos sobre PostgreSQL.
type SchemaRepo struct {
	q Querier
}

// NewSchemaRepository construye el adaptador de esquema.
func NewSchemaRepository(q Querier) *SchemaRepo {
	return &SchemaRepo{q: q}
}

// EnsureColumn agrega table.column con definition si aún no existe en el esquema actual.
// table y column se validan y se citan; definition viene de una tabla fija del código, nunca del cliente.
func (r *SchemaRepo) EnsureColumn(ctx context.Context, table, column, definition string) (bool, error) {
	if !identPattern.MatchString(table) || !identPattern.MatchString(column) {
		return false, fmt.Errorf("identificador inválido: %s.%s", table, column)
	}

	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
		)`, table, column).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	if exists {
		return false, nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
		pgx.Identifier{table}.Sanitize(), pgx.Identifier{column}.Sanitize(), definition)
	if _, err := r.q.Exec(ctx, stmt); err != nil {
		return false, fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return true, nil
}
