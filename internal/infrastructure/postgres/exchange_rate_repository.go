package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

const exchangeRateColumns = `id, rate_date, usd_to_khr, set_by, created_at, updated_at`

// ExchangeRateRepo implementación del puerto ExchangeRateRepository sobre PostgreSQL.
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador de persistencia para tasas de cambio.
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

// Upsert inserta la tasa del día o actualiza la existente en una sola sentencia.
// Dos escrituras concurrentes del mismo día no pueden producir dos filas.
func (r *ExchangeRateRepo) Upsert(ctx context.Context, rate *entity.ExchangeRate) (*entity.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (rate_date) DO UPDATE
			SET usd_to_khr = EXCLUDED.usd_to_khr, set_by = EXCLUDED.set_by, updated_at = EXCLUDED.updated_at
		RETURNING ` + exchangeRateColumns
	saved, err := scanExchangeRate(r.q.QueryRow(ctx, query,
		rate.ID, entity.DateOf(rate.RateDate), rate.USDToKHR, rate.SetBy, rate.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert exchange rate: %w", err)
	}
	return saved, nil
}

func (r *ExchangeRateRepo) GetByDate(ctx context.Context, day time.Time) (*entity.ExchangeRate, error) {
	rate, err := scanExchangeRate(r.q.QueryRow(ctx,
		`SELECT `+exchangeRateColumns+` FROM exchange_rates WHERE rate_date = $1`, entity.DateOf(day)))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange rate: %w", err)
	}
	return rate, nil
}

func (r *ExchangeRateRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ExchangeRate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+exchangeRateColumns+` FROM exchange_rates ORDER BY rate_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exchange rates: %w", err)
	}
	defer rows.Close()

	var out []*entity.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		out = append(out, rate)
	}
	return out, rows.Err()
}

// History tasas desde since (inclusive) con el nombre del usuario que las fijó.
func (r *ExchangeRateRepo) History(ctx context.Context, since time.Time) ([]*repository.ExchangeRateHistoryRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT er.id, er.rate_date, er.usd_to_khr, er.set_by, er.created_at, er.updated_at,
			COALESCE(u.full_name, '')
		FROM exchange_rates er
		LEFT JOIN users u ON u.id = er.set_by
		WHERE er.rate_date >= $1
		ORDER BY er.rate_date DESC`, entity.DateOf(since))
	if err != nil {
		return nil, fmt.Errorf("exchange rate history: %w", err)
	}
	defer rows.Close()

	var out []*repository.ExchangeRateHistoryRow
	for rows.Next() {
		var h repository.ExchangeRateHistoryRow
		x := &h.Rate
		if err := rows.Scan(&x.ID, &x.RateDate, &x.USDToKHR, &x.SetBy, &x.CreatedAt, &x.UpdatedAt, &h.SetByName); err != nil {
			return nil, fmt.Errorf("scan exchange rate history: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

func scanExchangeRate(row pgx.Row) (*entity.ExchangeRate, error) {
	var x entity.ExchangeRate
	if err := row.Scan(&x.ID, &x.RateDate, &x.USDToKHR, &x.SetBy, &x.CreatedAt, &x.UpdatedAt); err != nil {
		return nil, err
	}
	return &x, nil
}
