package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
)

// AuditoriaHandler consulta del log de auditoría. Solo admin.
type AuditoriaHandler struct {
	svc *audit.Service
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(svc *audit.Service) *AuditoriaHandler {
	return &AuditoriaHandler{svc: svc}
}

// List godoc
// @Summary      Listar eventos de auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        entidad  query  string  false  "filtrar por entidad (pedido, orden_compra, ...)"
// @Param        limit    query  int     false  "tamaño de página (def. 20)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.AuditoriaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	entidad := c.Query("entidad")
	eventos, err := h.svc.List(entidad, page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.AuditoriaResponse, 0, len(eventos))
	for _, e := range eventos {
		out = append(out, dto.AuditoriaFromEntity(e))
	}
	return c.JSON(out)
}
