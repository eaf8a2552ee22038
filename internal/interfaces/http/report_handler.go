package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/application/reporting"
)

// ReportHandler maneja los reportes del panel (protegido).
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del dashboard (hoy + mes en curso)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PnL godoc
// @Summary      Reporte de pérdidas y ganancias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        marketer_id  query  string  false  "Filtrar por marketer (vacío = toda la red)"
// @Param        start_date   query  string  false  "Fecha inicial (2006-01-02; vacío = inicio de mes)"
// @Param        end_date     query  string  false  "Fecha final (2006-01-02; vacío = hoy)"
// @Success      200  {object}  dto.PnLReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/pnl [get]
func (h *ReportHandler) PnL(c *fiber.Ctx) error {
	var in dto.PnLRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GetPnL(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProductPerformance godoc
// @Summary      Desempeño por producto y combo en el período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Fecha inicial (2006-01-02)"
// @Param        end_date    query  string  false  "Fecha final (2006-01-02)"
// @Success      200  {object}  dto.ProductPerformanceReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/products [get]
func (h *ReportHandler) ProductPerformance(c *fiber.Ctx) error {
	out, err := h.uc.GetProductPerformance(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(out)
}
