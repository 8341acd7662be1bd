package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/application/usecase"
)

// ReasonHandler maneja la consulta del catálogo de motivos.
type ReasonHandler struct {
	uc *usecase.ReasonUseCase
}

// NewReasonHandler construye el handler de motivos.
func NewReasonHandler(uc *usecase.ReasonUseCase) *ReasonHandler {
	return &ReasonHandler{uc: uc}
}

// List godoc
// @Summary      Listar motivos de merma activos
// @Tags         reasons
// @Produce      json
// @Success      200  {array}   dto.ReasonResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reasons [get]
func (h *ReasonHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}
