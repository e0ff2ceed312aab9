package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// FormulaHandler maneja fórmulas de producción.
type FormulaHandler struct {
	uc        *usecase.FormulaUseCase
	auditoria *audit.Service
}

// NewFormulaHandler construye el handler.
func NewFormulaHandler(uc *usecase.FormulaUseCase, auditoria *audit.Service) *FormulaHandler {
	return &FormulaHandler{uc: uc, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear fórmula
// @Tags         formulas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearFormulaRequest  true  "producto, rendimiento por lote y materias primas"
// @Success      201   {object}  dto.FormulaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/formulas [post]
func (h *FormulaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	detalles := make([]usecase.DetalleFormulaInput, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		detalles = append(detalles, usecase.DetalleFormulaInput{
			MateriaPrimaID:  d.MateriaPrimaID,
			CantidadPorLote: d.CantidadPorLote,
		})
	}
	f, err := h.uc.Crear(in.ProductoID, in.Nombre, in.Rendimiento, detalles)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "formula", RegistroID: f.ID, Accion: "CREAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.FormulaFromEntity(f))
}

// List godoc
// @Summary      Listar fórmulas
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.FormulaResponse
// @Router       /api/formulas [get]
func (h *FormulaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	fs, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.FormulaResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, dto.FormulaFromEntity(f))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener fórmula con sus líneas
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.FormulaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [get]
func (h *FormulaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	f, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.FormulaFromEntity(f))
}

// Eliminar godoc
// @Summary      Eliminar fórmula (borrado lógico)
// @Tags         formulas
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [delete]
func (h *FormulaHandler) Eliminar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.Eliminar(id); err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "formula", RegistroID: id, Accion: "ELIMINAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.SendStatus(fiber.StatusNoContent)
}
