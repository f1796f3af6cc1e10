package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
)

func TestExportPerformance_FilasYTotal(t *testing.T) {
	report := &dto.PerformanceReport{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
		Rows: []dto.PerformanceRow{
			{CashierName: "Alice", TotalSales: 3, TotalRevenue: decimal.RequireFromString("300.50")},
			{CashierName: "Bob", TotalSales: 1, TotalRevenue: decimal.NewFromInt(50)},
		},
	}

	out, err := NewPerformanceExporter().ExportPerformance(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	name, _ := f.GetCellValue(performanceSheet, "A4")
	assert.Equal(t, "Alice", name)
	sales, _ := f.GetCellValue(performanceSheet, "B5")
	assert.Equal(t, "1", sales)
	total, _ := f.GetCellValue(performanceSheet, "A6")
	assert.Equal(t, "TOTAL", total)
	count, _ := f.GetCellValue(performanceSheet, "B6")
	assert.Equal(t, "4", count)
}

func TestExportPerformance_SinFilas(t *testing.T) {
	out, err := NewPerformanceExporter().ExportPerformance(&dto.PerformanceReport{StartDate: "2026-01-01", EndDate: "2026-01-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
