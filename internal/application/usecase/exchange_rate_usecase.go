package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/pos"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// Límites de consulta de tasas.
const (
	RecentRatesLimit   = 30
	DefaultHistoryDays = 30
	MaxHistoryDays     = 365
)

// ExchangeRateUseCase tasa de cambio USD→KHR por día.
type ExchangeRateUseCase struct {
	repo        repository.ExchangeRateRepository
	defaultRate decimal.Decimal
	now         func() time.Time
}

// NewExchangeRateUseCase construye el caso de uso. defaultRate se usa cuando no hay tasa del día.
func NewExchangeRateUseCase(repo repository.ExchangeRateRepository, defaultRate decimal.Decimal) *ExchangeRateUseCase {
	return &ExchangeRateUseCase{repo: repo, defaultRate: defaultRate, now: time.Now}
}

// Recent devuelve las últimas 30 tasas por fecha descendente.
func (uc *ExchangeRateUseCase) Recent(ctx context.Context) ([]dto.ExchangeRateResponse, error) {
	list, err := uc.repo.ListRecent(ctx, RecentRatesLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExchangeRateResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toExchangeRateResponse(r, ""))
	}
	return out, nil
}

// Set fija la tasa de una fecha (hoy si no viene). Una sola sentencia: la segunda escritura del día gana.
func (uc *ExchangeRateUseCase) Set(ctx context.Context, actorID string, in dto.SetExchangeRateRequest) (*dto.ExchangeRateResponse, error) {
	if in.USDToKHR.LessThan(decimal.NewFromInt(1)) {
		return nil, domain.Invalid("usd_to_khr must be at least 1")
	}
	day := entity.DateOf(uc.now())
	if in.RateDate != "" {
		t, err := time.Parse(pos.DateLayout, in.RateDate)
		if err != nil {
			return nil, domain.Invalid("rate_date must be YYYY-MM-DD")
		}
		day = t
	}
	now := uc.now()
	saved, err := uc.repo.Upsert(ctx, &entity.ExchangeRate{
		ID:        uuid.New().String(),
		RateDate:  day,
		USDToKHR:  in.USDToKHR,
		SetBy:     actorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	resp := toExchangeRateResponse(saved, "")
	return &resp, nil
}

// History tasas de los últimos days días con el nombre de quien las fijó.
func (uc *ExchangeRateUseCase) History(ctx context.Context, days int) ([]dto.ExchangeRateResponse, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}
	since := entity.DateOf(uc.now()).AddDate(0, 0, -days)
	rows, err := uc.repo.History(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExchangeRateResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toExchangeRateResponse(&r.Rate, r.SetByName))
	}
	return out, nil
}

// Today tasa vigente hoy o la tasa por defecto.
func (uc *ExchangeRateUseCase) Today(ctx context.Context) (decimal.Decimal, error) {
	return TodayRate(ctx, uc.repo, uc.now(), uc.defaultRate)
}

// TodayRate busca la tasa del día de now; si no existe devuelve def.
func TodayRate(ctx context.Context, repo repository.ExchangeRateRepository, now time.Time, def decimal.Decimal) (decimal.Decimal, error) {
	r, err := repo.GetByDate(ctx, entity.DateOf(now))
	if err != nil {
		return decimal.Zero, err
	}
	if r == nil {
		return def, nil
	}
	return r.USDToKHR, nil
}

func toExchangeRateResponse(r *entity.ExchangeRate, setByName string) dto.ExchangeRateResponse {
	return dto.ExchangeRateResponse{
		ID:        r.ID,
		RateDate:  r.RateDate.Format(pos.DateLayout),
		USDToKHR:  r.USDToKHR,
		SetBy:     r.SetBy,
		SetByName: setByName,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
