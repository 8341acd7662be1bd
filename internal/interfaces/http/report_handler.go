package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/application/usecase"
)

// ReportHandler maneja los reportes de pérdidas.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Loss godoc
// @Summary      Reporte de pérdidas por motivo
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "inicio del rango (RFC3339)"
// @Param        to    query  string  false  "fin del rango (RFC3339)"
// @Success      200   {object}  dto.LossReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/loss [get]
func (h *ReportHandler) Loss(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.Loss(c.UserContext(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LossPDF godoc
// @Summary      Reporte de pérdidas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        from  query  string  false  "inicio del rango (RFC3339)"
// @Param        to    query  string  false  "fin del rango (RFC3339)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/loss/pdf [get]
func (h *ReportHandler) LossPDF(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	pdfBytes, err := h.uc.LossPDF(c.UserContext(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_mermas.pdf"`)
	return c.Send(pdfBytes)
}
