package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/purchasing"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// ComprasHandler maneja cotizaciones, órdenes de compra y recepción de mercancía.
type ComprasHandler struct {
	uc        *purchasing.UseCase
	auditoria *audit.Service
}

// NewComprasHandler construye el handler.
func NewComprasHandler(uc *purchasing.UseCase, auditoria *audit.Service) *ComprasHandler {
	return &ComprasHandler{uc: uc, auditoria: auditoria}
}

// CrearCotizacion godoc
// @Summary      Crear cotización de proveedor
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCotizacionRequest  true  "proveedor y líneas (cantidad en gramos)"
// @Success      201   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones [post]
func (h *ComprasHandler) CrearCotizacion(c *fiber.Ctx) error {
	var in dto.CrearCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	lineas := make([]purchasing.LineaCotizacionInput, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		lineas = append(lineas, purchasing.LineaCotizacionInput{
			MateriaPrimaID: d.MateriaPrimaID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	cot, err := h.uc.CrearCotizacion(in.ProveedorID, lineas)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "cotizacion", RegistroID: cot.ID, Accion: "CREAR",
		ValorNuevo: cot.Total.String(), UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.CotizacionFromEntity(cot))
}

// ListCotizaciones godoc
// @Summary      Listar cotizaciones
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CotizacionResponse
// @Router       /api/cotizaciones [get]
func (h *ComprasHandler) ListCotizaciones(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	cots, err := h.uc.ListCotizaciones(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.CotizacionResponse, 0, len(cots))
	for _, cot := range cots {
		out = append(out, dto.CotizacionFromEntity(cot))
	}
	return c.JSON(out)
}

// GetCotizacion godoc
// @Summary      Obtener cotización con sus líneas
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [get]
func (h *ComprasHandler) GetCotizacion(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	cot, err := h.uc.GetCotizacion(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.CotizacionFromEntity(cot))
}

// CrearOrdenCompra godoc
// @Summary      Crear orden de compra sobre una cotización
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearOrdenCompraRequest  true  "cotización origen"
// @Success      201   {object}  dto.OrdenCompraResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra [post]
func (h *ComprasHandler) CrearOrdenCompra(c *fiber.Ctx) error {
	var in dto.CrearOrdenCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	orden, err := h.uc.CrearOrdenCompra(in.CotizacionID)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "orden_compra", RegistroID: orden.ID, Accion: "CREAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.OrdenCompraFromEntity(orden))
}

// ListOrdenesCompra godoc
// @Summary      Listar órdenes de compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.OrdenCompraResponse
// @Router       /api/ordenes-compra [get]
func (h *ComprasHandler) ListOrdenesCompra(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	ordenes, err := h.uc.ListOrdenesCompra(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.OrdenCompraResponse, 0, len(ordenes))
	for _, o := range ordenes {
		out = append(out, dto.OrdenCompraFromEntity(o))
	}
	return c.JSON(out)
}

// GetOrdenCompra godoc
// @Summary      Obtener orden de compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id} [get]
func (h *ComprasHandler) GetOrdenCompra(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	orden, err := h.uc.GetOrdenCompra(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OrdenCompraFromEntity(orden))
}

// RecibirOrden godoc
// @Summary      Cambiar estado de una orden de compra (recepción)
// @Description  RECIBIDO registra las entradas pendientes de cada línea de
//
//	la cotización; PARCIALMENTE_RECIBIDO registra las cantidades
//	declaradas en items. Cada línea es atómica por sí misma: una línea
//	fallida se salta y se cuenta en lineas_fallidas, el resto continúa.
//
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.RecibirOrdenRequest  true  "estado destino e items para recepción parcial"
// @Success      200   {object}  dto.RecepcionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id}/estado [patch]
func (h *ComprasHandler) RecibirOrden(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.RecibirOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	items := make([]purchasing.ItemRecepcion, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, purchasing.ItemRecepcion{MateriaPrimaID: it.MateriaPrimaID, Cantidad: it.Cantidad})
	}
	usuarioID := GetUsuarioID(c)
	res, err := h.uc.RecibirOrden(c.Context(), id, in.EstadoID, items, usuarioID)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "orden_compra", RegistroID: id, Accion: "CAMBIO_ESTADO",
		ValorNuevo: entity.NombreEstadoOC[in.EstadoID],
		UsuarioID:  usuarioID,
	})
	out := dto.RecepcionResponse{
		Orden:          dto.OrdenCompraFromEntity(res.Orden),
		LineasFallidas: res.LineasFallidas,
	}
	for _, m := range res.Movimientos {
		out.Movimientos = append(out.Movimientos, dto.MovimientoFromEntity(m))
	}
	return c.JSON(out)
}
