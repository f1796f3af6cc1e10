package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/usecase"
)

// ReportHandler reportes de ventas (admin y manager).
type ReportHandler struct {
	uc       *usecase.ReportUseCase
	products *usecase.ProductUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, products *usecase.ProductUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, products: products}
}

// Performance godoc
// @Summary      Ventas e ingresos por cajero
// @Description  Sin fechas usa el mes en curso. end_date es inclusivo hasta 23:59:59.
// @Description  data es la lista de filas; message lleva el período "start_date..end_date".
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.Envelope{data=[]dto.PerformanceRow}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/reports/performance [get]
func (h *ReportHandler) Performance(c *fiber.Ctx) error {
	out, err := h.uc.Performance(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return handleError(c, err)
	}
	return okWith(c, out.Rows, out.StartDate+".."+out.EndDate)
}

// Profit godoc
// @Summary      Ingreso, costo y margen bruto de las ventas completadas
// @Description  start_date y end_date son obligatorios. end_date es inclusivo hasta 23:59:59.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.Envelope{data=dto.ProfitReport}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	out, err := h.uc.Profit(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// ExportPerformance godoc
// @Summary      Reporte de desempeño en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.Envelope
// @Router       /api/reports/performance/export [get]
func (h *ReportHandler) ExportPerformance(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPerformance(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Daily godoc
// @Summary      Resumen de ventas del día por método de pago
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (hoy por defecto)"
// @Success      200  {object}  dto.Envelope{data=dto.DailySummary}
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.Daily(c.UserContext(), c.Query("date"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// TopSelling godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Cantidad"  default(10)
// @Success      200  {object}  dto.Envelope{data=[]dto.TopProductRow}
// @Router       /api/reports/top-selling [get]
func (h *ReportHandler) TopSelling(c *fiber.Ctx) error {
	out, err := h.uc.TopSelling(c.UserContext(), c.Query("start_date"), c.Query("end_date"),
		c.QueryInt("limit", usecase.DefaultTopSellingLimit))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ProductResponse}
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.products.LowStock(c.UserContext(), true)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, out)
}
