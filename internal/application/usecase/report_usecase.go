package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/pos"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// DefaultTopSellingLimit productos por defecto en el ranking.
const DefaultTopSellingLimit = 10

// PerformanceExporter genera el archivo descargable del reporte de desempeño.
type PerformanceExporter interface {
	ExportPerformance(report *dto.PerformanceReport) ([]byte, error)
}

// ReportUseCase reportes de ventas.
type ReportUseCase struct {
	repo     repository.ReportRepository
	exporter PerformanceExporter
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, exporter PerformanceExporter) *ReportUseCase {
	return &ReportUseCase{repo: repo, exporter: exporter, now: time.Now}
}

// Performance agrupa las ventas completadas por cajero. Sin fechas usa el mes en curso.
func (uc *ReportUseCase) Performance(ctx context.Context, startDate, endDate string) (*dto.PerformanceReport, error) {
	r, err := uc.rangeOrMonth(startDate, endDate)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Performance(ctx, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	out := &dto.PerformanceReport{
		StartDate: r.Start.Format(pos.DateLayout),
		EndDate:   r.End.Format(pos.DateLayout),
		Rows:      make([]dto.PerformanceRow, 0, len(rows)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, dto.PerformanceRow{
			CashierID:    row.CashierID,
			CashierName:  row.CashierName,
			TotalSales:   row.TotalSales,
			TotalRevenue: row.TotalRevenue,
		})
	}
	return out, nil
}

// Profit ingreso, costo y margen bruto de las ventas completadas. Ambas fechas son obligatorias.
func (uc *ReportUseCase) Profit(ctx context.Context, startDate, endDate string) (*dto.ProfitReport, error) {
	if startDate == "" || endDate == "" {
		return nil, domain.Invalid("start_date and end_date required")
	}
	r, err := pos.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, domain.Invalid(err.Error())
	}
	totals, err := uc.repo.Profit(ctx, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	gross := totals.Revenue.Sub(totals.Cost)
	margin := decimal.Zero
	if totals.Revenue.IsPositive() {
		margin = gross.Div(totals.Revenue).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return &dto.ProfitReport{
		Period:       dto.ReportPeriod{StartDate: startDate, EndDate: endDate},
		SalesCount:   totals.SalesCount,
		TotalRevenue: totals.Revenue.Round(2),
		TotalCost:    totals.Cost.Round(2),
		GrossProfit:  gross.Round(2),
		ProfitMargin: margin,
	}, nil
}

// ExportPerformance genera el reporte de desempeño como archivo. Devuelve bytes y nombre sugerido.
func (uc *ReportUseCase) ExportPerformance(ctx context.Context, startDate, endDate string) ([]byte, string, error) {
	report, err := uc.Performance(ctx, startDate, endDate)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportPerformance(report)
	if err != nil {
		return nil, "", err
	}
	return data, "performance_" + report.StartDate + "_" + report.EndDate + ".xlsx", nil
}

// Daily resumen de ventas de un día (hoy por defecto) agrupado por método de pago.
func (uc *ReportUseCase) Daily(ctx context.Context, date string) (*dto.DailySummary, error) {
	day := entity.DateOf(uc.now())
	if date != "" {
		t, err := time.Parse(pos.DateLayout, date)
		if err != nil {
			return nil, domain.Invalid("date must be YYYY-MM-DD")
		}
		day = t
	}
	rows, err := uc.repo.SalesByPaymentMethod(ctx, day, pos.EndOfDay(day))
	if err != nil {
		return nil, err
	}
	out := &dto.DailySummary{
		Date:         day.Format(pos.DateLayout),
		TotalRevenue: decimal.Zero,
		ByMethod:     make([]dto.PaymentMethodRow, 0, len(rows)),
	}
	for _, row := range rows {
		out.TotalSales += row.Count
		out.TotalRevenue = out.TotalRevenue.Add(row.TotalUSD)
		out.ByMethod = append(out.ByMethod, dto.PaymentMethodRow{
			PaymentMethod: row.PaymentMethod,
			Count:         row.Count,
			TotalUSD:      row.TotalUSD,
		})
	}
	return out, nil
}

// TopSelling productos más vendidos del rango (mes en curso por defecto).
func (uc *ReportUseCase) TopSelling(ctx context.Context, startDate, endDate string, limit int) ([]dto.TopProductRow, error) {
	r, err := uc.rangeOrMonth(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = DefaultTopSellingLimit
	}
	rows, err := uc.repo.TopSelling(ctx, r.Start, r.End, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopProductRow{
			ProductID: row.ProductID,
			Name:      row.Name,
			SKU:       row.SKU,
			Quantity:  row.Quantity,
			Revenue:   row.Revenue,
		})
	}
	return out, nil
}

func (uc *ReportUseCase) rangeOrMonth(startDate, endDate string) (*pos.DateRange, error) {
	r, err := pos.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, domain.Invalid(err.Error())
	}
	if r != nil {
		return r, nil
	}
	today := entity.DateOf(uc.now())
	first := today.AddDate(0, 0, 1-today.Day())
	return &pos.DateRange{Start: first, End: pos.EndOfDay(today)}, nil
}
