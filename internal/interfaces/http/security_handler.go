package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Account-api/internal/application/usecase"
)

// SecurityHandler consulta y exportación del log de eventos de seguridad.
type SecurityHandler struct {
	uc *usecase.SecurityEventUseCase
}

func NewSecurityHandler(uc *usecase.SecurityEventUseCase) *SecurityHandler {
	return &SecurityHandler{uc: uc}
}

// ListEvents godoc
// @Summary      Listar eventos de seguridad
// @Tags         security
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.EventResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/security/events [get]
func (h *SecurityHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.uc.ListEvents(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(events)
}

// ExportPDF godoc
// @Summary      Exportar eventos de seguridad a PDF
// @Tags         security
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/security/events/pdf [get]
func (h *SecurityHandler) ExportPDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(doc)
}
