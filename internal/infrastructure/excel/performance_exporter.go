// Package excel exporta reportes a XLSX.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

var _ usecase.PerformanceExporter = (*PerformanceExporter)(nil)

const performanceSheet = "Performance"

// PerformanceExporter genera el XLSX del reporte de desempeño por cajero.
type PerformanceExporter struct{}

// NewPerformanceExporter construye el exportador.
func NewPerformanceExporter() *PerformanceExporter { return &PerformanceExporter{} }

// ExportPerformance una hoja con el rango en la fila 1, cabecera en la 3 y una fila por cajero.
// La última fila suma ventas e ingresos.
func (e *PerformanceExporter) ExportPerformance(report *dto.PerformanceReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("excel: reporte nil")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(performanceSheet)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	_ = f.SetCellValue(performanceSheet, "A1", fmt.Sprintf("Cashier performance %s to %s", report.StartDate, report.EndDate))

	header := []string{"Cashier", "Total sales", "Total revenue (USD)"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 3)
		_ = f.SetCellValue(performanceSheet, cell, v)
	}

	totalSales := 0
	totalRevenue := 0.0
	for i, r := range report.Rows {
		row := i + 4
		revenue := r.TotalRevenue.Round(2).InexactFloat64()
		values := []any{r.CashierName, r.TotalSales, revenue}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(performanceSheet, cell, v)
		}
		totalSales += r.TotalSales
		totalRevenue += revenue
	}
	last := len(report.Rows) + 4
	_ = f.SetCellValue(performanceSheet, fmt.Sprintf("A%d", last), "TOTAL")
	_ = f.SetCellValue(performanceSheet, fmt.Sprintf("B%d", last), totalSales)
	_ = f.SetCellValue(performanceSheet, fmt.Sprintf("C%d", last), totalRevenue)

	_ = f.SetColWidth(performanceSheet, "A", "A", 28)
	_ = f.SetColWidth(performanceSheet, "B", "B", 14)
	_ = f.SetColWidth(performanceSheet, "C", "C", 20)

	bold, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(performanceSheet, "A3", "C3", bold)

	money, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	_ = f.SetCellStyle(performanceSheet, "C4", fmt.Sprintf("C%d", last), money)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
