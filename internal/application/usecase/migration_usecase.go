package usecase

import (
	"context"
	"net/http"
	"sort"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// NamedColumn cambio aditivo de una columna expuesto como migración nombrada.
type NamedColumn struct {
	Table       string
	Column      string
	Definition  string
	Description string
}

// NamedColumns migraciones nombradas disponibles en /api/migrate/{name}. La migración versionada
// 000002_named_columns crea las mismas columnas; estos endpoints solo rellenan bases creadas antes
// de versionar el esquema y en una base al día responden applied=false.
var NamedColumns = map[string]NamedColumn{
	"notes": {
		Table:       "sales",
		Column:      "internal_notes",
		Definition:  "TEXT NULL",
		Description: "Backfill for databases created before versioned migrations: adds sales.internal_notes (also created by migration 000002)",
	},
	"telegram": {
		Table:       "users",
		Column:      "telegram_chat_id",
		Definition:  "VARCHAR(50) NULL",
		Description: "Backfill for databases created before versioned migrations: adds users.telegram_chat_id (also created by migration 000002)",
	},
}

// MigrationUseCase aplica y describe las migraciones nombradas.
type MigrationUseCase struct {
	repo repository.SchemaRepository
}

// NewMigrationUseCase construye el caso de uso.
func NewMigrationUseCase(repo repository.SchemaRepository) *MigrationUseCase {
	return &MigrationUseCase{repo: repo}
}

// Names devuelve los nombres registrados en orden alfabético.
func (uc *MigrationUseCase) Names() []string {
	names := make([]string, 0, len(NamedColumns))
	for n := range NamedColumns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Describe devuelve la descripción estática de la migración.
func (uc *MigrationUseCase) Describe(name string) (*dto.MigrationInfo, error) {
	m, ok := NamedColumns[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dto.MigrationInfo{
		Migration:   name,
		Table:       m.Table,
		Column:      m.Column,
		Description: m.Description,
		Method:      http.MethodPost,
	}, nil
}

// Apply agrega la columna si falta. Es idempotente: la segunda vez devuelve Applied=false.
func (uc *MigrationUseCase) Apply(ctx context.Context, name string) (*dto.MigrationResult, error) {
	m, ok := NamedColumns[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	applied, err := uc.repo.EnsureColumn(ctx, m.Table, m.Column, m.Definition)
	if err != nil {
		return nil, err
	}
	return &dto.MigrationResult{Migration: name, Table: m.Table, Column: m.Column, Applied: applied}, nil
}
