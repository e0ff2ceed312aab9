package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// MateriaPrimaHandler maneja el catálogo de materias primas, sus ajustes
// manuales de stock y la consulta del ledger.
type MateriaPrimaHandler struct {
	uc          *usecase.MateriaPrimaUseCase
	ledger      *inventory.Ledger
	movimientos *usecase.MovimientosUseCase
	auditoria   *audit.Service
}

// NewMateriaPrimaHandler construye el handler.
func NewMateriaPrimaHandler(uc *usecase.MateriaPrimaUseCase, ledger *inventory.Ledger, movimientos *usecase.MovimientosUseCase, auditoria *audit.Service) *MateriaPrimaHandler {
	return &MateriaPrimaHandler{uc: uc, ledger: ledger, movimientos: movimientos, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear materia prima
// @Tags         materias-primas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearMateriaPrimaRequest  true  "nombre y unidad de medida"
// @Success      201   {object}  dto.MateriaPrimaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materias-primas [post]
func (h *MateriaPrimaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearMateriaPrimaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	mp, err := h.uc.Crear(in.Nombre, in.UnidadMedida)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "materia_prima", RegistroID: mp.ID, Accion: "CREAR",
		ValorNuevo: mp.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.MateriaPrimaFromEntity(mp))
}

// List godoc
// @Summary      Listar materias primas
// @Tags         materias-primas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MateriaPrimaResponse
// @Router       /api/materias-primas [get]
func (h *MateriaPrimaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	mps, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.MateriaPrimaResponse, 0, len(mps))
	for _, mp := range mps {
		out = append(out, dto.MateriaPrimaFromEntity(mp))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener materia prima
// @Tags         materias-primas
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.MateriaPrimaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materias-primas/{id} [get]
func (h *MateriaPrimaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	mp, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MateriaPrimaFromEntity(mp))
}

// Actualizar godoc
// @Summary      Actualizar materia prima (no el stock)
// @Tags         materias-primas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.CrearMateriaPrimaRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.MateriaPrimaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materias-primas/{id} [put]
func (h *MateriaPrimaHandler) Actualizar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.CrearMateriaPrimaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mp, err := h.uc.Actualizar(id, in.Nombre, in.UnidadMedida)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "materia_prima", RegistroID: mp.ID, Accion: "ACTUALIZAR",
		ValorNuevo: mp.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.JSON(dto.MateriaPrimaFromEntity(mp))
}

// Eliminar godoc
// @Summary      Eliminar materia prima (borrado lógico)
// @Tags         materias-primas
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materias-primas/{id} [delete]
func (h *MateriaPrimaHandler) Eliminar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.Eliminar(id); err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "materia_prima", RegistroID: id, Accion: "ELIMINAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// AjustarStock godoc
// @Summary      Ajuste manual de stock de materia prima
// @Description  Delta con signo: positivo registra ENTRADA, negativo SALIDA.
//
//	El ajuste pasa por el ledger: misma verificación de no-negatividad y
//	mismo movimiento append-only que cualquier otra operación.
//
// @Tags         materias-primas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.AjusteStockRequest  true  "delta, tipo opcional, motivo"
// @Success      200   {object}  dto.AjusteStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materias-primas/{id}/ajustes [post]
func (h *MateriaPrimaHandler) AjustarStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.AjusteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	usuarioID := GetUsuarioID(c)
	res, err := h.ledger.AjustarStock(c.Context(), inventory.AjusteInput{
		TipoItem:  entity.TipoItemMateriaPrima,
		ItemID:    id,
		Delta:     in.Delta,
		Tipo:      in.Tipo,
		Motivo:    in.Motivo,
		UsuarioID: &usuarioID,
	})
	if err != nil {
		return responderError(c, err)
	}
	out := dto.AjusteStockResponse{StockActual: res.Item.StockActual, CambioRealizado: res.CambioRealizado}
	if res.CambioRealizado {
		mov := dto.MovimientoFromEntity(res.Movimiento)
		out.Movimiento = &mov
		h.auditoria.Registrar(audit.Entrada{
			Entidad: "materia_prima", RegistroID: id, Accion: "AJUSTE_STOCK",
			ValorNuevo: fmt.Sprintf("delta %s (%s)", in.Delta.String(), in.Motivo),
			UsuarioID:  usuarioID,
		})
	}
	return c.JSON(out)
}

// Movimientos godoc
// @Summary      Historial de movimientos de una materia prima
// @Tags         materias-primas
// @Security     Bearer
// @Produce      json
// @Param        id      path   int     true   "ID"
// @Param        desde   query  string  false  "fecha inicial (RFC 3339)"
// @Param        hasta   query  string  false  "fecha final (RFC 3339)"
// @Param        limit   query  int     false  "tamaño de página (def. 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/materias-primas/{id}/movimientos [get]
func (h *MateriaPrimaHandler) Movimientos(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	desde, hasta, err := parseRangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (RFC 3339)"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movs, err := h.movimientos.ListByItem(entity.TipoItemMateriaPrima, id, desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MovimientosFromEntities(movs))
}

// parseRangoFechas lee los query params desde/hasta como RFC 3339 opcionales.
func parseRangoFechas(c *fiber.Ctx) (desde, hasta *time.Time, err error) {
	if s := c.Query("desde"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		hasta = &t
	}
	return desde, hasta, nil
}
