package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de ventas completadas sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Performance ventas y facturación por cajero en [from, to].
func (r *ReportRepo) Performance(ctx context.Context, from, to time.Time) ([]*repository.CashierPerformance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.cashier_id, COALESCE(u.full_name, 'Unknown'), COUNT(*), COALESCE(SUM(s.total_usd), 0)
		FROM sales s
		LEFT JOIN users u ON u.id = s.cashier_id
		WHERE s.status = 'completed' AND s.created_at BETWEEN $1 AND $2
		GROUP BY s.cashier_id, u.full_name
		ORDER BY SUM(s.total_usd) DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("performance report: %w", err)
	}
	defer rows.Close()

	var out []*repository.CashierPerformance
	for rows.Next() {
		var c repository.CashierPerformance
		if err := rows.Scan(&c.CashierID, &c.CashierName, &c.TotalSales, &c.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan performance row: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]*repository.PaymentMethodTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total_usd), 0)
		FROM sales
		WHERE status = 'completed' AND created_at BETWEEN $1 AND $2
		GROUP BY payment_method
		ORDER BY payment_method`, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by payment method: %w", err)
	}
	defer rows.Close()

	var out []*repository.PaymentMethodTotal
	for rows.Next() {
		var m repository.PaymentMethodTotal
		if err := rows.Scan(&m.PaymentMethod, &m.Count, &m.TotalUSD); err != nil {
			return nil, fmt.Errorf("scan payment method row: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// TopSelling productos con más unidades vendidas en el rango.
func (r *ReportRepo) TopSelling(ctx context.Context, from, to time.Time, limit int) ([]*repository.TopProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.sku, SUM(si.quantity), SUM(si.total)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.status = 'completed' AND s.created_at BETWEEN $1 AND $2
		GROUP BY p.id, p.name, p.sku
		ORDER BY SUM(si.quantity) DESC, SUM(si.total) DESC
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	defer rows.Close()

	var out []*repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.SKU, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Profit ingreso y costo de las ventas completed en [from, to]. El costo sale del snapshot de cada línea.
func (r *ReportRepo) Profit(ctx context.Context, from, to time.Time) (*repository.ProfitTotals, error) {
	var p repository.ProfitTotals
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(s.total_usd), 0), COALESCE(SUM(c.cost), 0)
		FROM sales s
		LEFT JOIN (
			SELECT sale_id, SUM(cost_price * quantity) AS cost FROM sale_items GROUP BY sale_id
		) c ON c.sale_id = s.id
		WHERE s.status = 'completed' AND s.created_at BETWEEN $1 AND $2`, from, to).
		Scan(&p.SalesCount, &p.Revenue, &p.Cost)
	if err != nil {
		return nil, fmt.Errorf("profit report: %w", err)
	}
	return &p, nil
}
