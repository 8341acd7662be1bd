package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/application/importer"
	"github.com/invorya/mermas-api/internal/domain"
)

// ImportHandler maneja el pipeline de importación de archivos planos.
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler construye el handler de importación.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Run godoc
// @Summary      Importar un archivo plano de mermas
// @Description  Procesa el archivo línea por línea: las líneas malformadas se
// @Description  reportan sin abortar el lote. Las entradas importadas nacen
// @Description  sincronizadas y no vuelven a exportarse.
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "file_path del archivo a importar"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/imports [post]
func (h *ImportHandler) Run(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FilePath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file_path es requerido"})
	}
	result, err := h.uc.RunFromFile(c.UserContext(), in.FilePath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "FILE_NOT_FOUND", Message: "el archivo no existe"})
		}
		if errors.Is(err, domain.ErrFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "IMPORT_FAILED", Message: err.Error()})
	}
	return c.JSON(result)
}

// History godoc
// @Summary      Historial de importaciones
// @Tags         imports
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.ImportLogResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/imports [get]
func (h *ImportHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.History(c.UserContext(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
