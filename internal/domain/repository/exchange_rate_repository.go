package repository

import (
	"context"
	"time"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
)

// ExchangeRateHistoryRow tasa con el nombre de quien la fijó.
type ExchangeRateHistoryRow struct {
	Rate      entity.ExchangeRate
	SetByName string
}

// ExchangeRateRepository define el puerto de persistencia para tasas de cambio (DIP).
type ExchangeRateRepository interface {
	// Upsert inserta o actualiza la tasa de rate.RateDate en una sola sentencia.
	Upsert(ctx context.Context, rate *entity.ExchangeRate) (*entity.ExchangeRate, error)
	GetByDate(ctx context.Context, day time.Time) (*entity.ExchangeRate, error)
	// ListRecent ordena por rate_date descendente.
	ListRecent(ctx context.Context, limit int) ([]*entity.ExchangeRate, error)
	History(ctx context.Context, since time.Time) ([]*ExchangeRateHistoryRow, error)
}
