package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/application/export"
)

// ExportHandler maneja el pipeline de exportación de archivos planos.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler de exportación.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Run godoc
// @Summary      Ejecutar exportación de entradas pendientes
// @Description  Genera un archivo plano por motivo con entradas pendientes y
// @Description  las marca como sincronizadas. Una corrida sin pendientes
// @Description  devuelve un resultado con ceros.
// @Tags         exports
// @Produce      json
// @Success      200  {object}  dto.ExportResult
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/exports [post]
func (h *ExportHandler) Run(c *fiber.Ctx) error {
	result, err := h.uc.Run(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	return c.JSON(result)
}

// Files godoc
// @Summary      Listar archivos exportados
// @Tags         exports
// @Produce      json
// @Success      200  {array}   export.FileInfo
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/exports/files [get]
func (h *ExportHandler) Files(c *fiber.Ctx) error {
	files, err := h.uc.ListFiles(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if files == nil {
		files = []export.FileInfo{}
	}
	return c.JSON(files)
}
