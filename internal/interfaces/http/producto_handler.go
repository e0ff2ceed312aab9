package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// ProductoHandler maneja el catálogo de productos terminados, sus ajustes
// manuales de stock y la consulta del ledger.
type ProductoHandler struct {
	uc          *usecase.ProductoUseCase
	ledger      *inventory.Ledger
	movimientos *usecase.MovimientosUseCase
	auditoria   *audit.Service
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase, ledger *inventory.Ledger, movimientos *usecase.MovimientosUseCase, auditoria *audit.Service) *ProductoHandler {
	return &ProductoHandler{uc: uc, ledger: ledger, movimientos: movimientos, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProductoRequest  true  "nombre, peso por unidad (gramos), precio"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p, err := h.uc.Crear(usecase.CrearProductoInput{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		PesoUnidad:  in.PesoUnidad,
		Precio:      in.Precio,
	})
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "producto", RegistroID: p.ID, Accion: "CREAR",
		ValorNuevo: p.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.ProductoFromEntity(p))
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	ps, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.ProductoResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.ProductoFromEntity(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	p, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.ProductoFromEntity(p))
}

// Actualizar godoc
// @Summary      Actualizar producto (no el stock)
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.CrearProductoRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Actualizar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.CrearProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Actualizar(id, usecase.CrearProductoInput{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		PesoUnidad:  in.PesoUnidad,
		Precio:      in.Precio,
	})
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "producto", RegistroID: p.ID, Accion: "ACTUALIZAR",
		ValorNuevo: p.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.JSON(dto.ProductoFromEntity(p))
}

// Eliminar godoc
// @Summary      Eliminar producto (borrado lógico)
// @Tags         productos
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Eliminar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.Eliminar(id); err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "producto", RegistroID: id, Accion: "ELIMINAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// AjustarStock godoc
// @Summary      Ajuste manual de stock de producto
// @Description  Delta con signo: positivo registra ENTRADA (o PRODUCCION si
//
//	tipo lo indica), negativo SALIDA. Pasa por el ledger.
//
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.AjusteStockRequest  true  "delta, tipo opcional, motivo"
// @Success      200   {object}  dto.AjusteStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/ajustes [post]
func (h *ProductoHandler) AjustarStock(c *fiber.Ctx) error {
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
		TipoItem:  entity.TipoItemProducto,
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
			Entidad: "producto", RegistroID: id, Accion: "AJUSTE_STOCK",
			ValorNuevo: fmt.Sprintf("delta %s (%s)", in.Delta.String(), in.Motivo),
			UsuarioID:  usuarioID,
		})
	}
	return c.JSON(out)
}

// Movimientos godoc
// @Summary      Historial de movimientos de un producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id      path   int     true   "ID"
// @Param        desde   query  string  false  "fecha inicial (RFC 3339)"
// @Param        hasta   query  string  false  "fecha final (RFC 3339)"
// @Param        limit   query  int     false  "tamaño de página (def. 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *ProductoHandler) Movimientos(c *fiber.Ctx) error {
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
	movs, err := h.movimientos.ListByItem(entity.TipoItemProducto, id, desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MovimientosFromEntities(movs))
}
