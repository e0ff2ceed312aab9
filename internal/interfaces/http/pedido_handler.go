package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/orders"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// PedidoHandler maneja pedidos de cliente: CRUD, transición de estado y
// descarga de la remisión de entrega.
type PedidoHandler struct {
	uc        *orders.UseCase
	pdfUC     *orders.PDFUseCase
	auditoria *audit.Service
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *orders.UseCase, pdfUC *orders.PDFUseCase, auditoria *audit.Service) *PedidoHandler {
	return &PedidoHandler{uc: uc, pdfUC: pdfUC, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  El pedido nace en PENDIENTE. El precio unitario de cada
//
//	línea se toma del producto en ese momento.
//
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearPedidoRequest  true  "cliente y líneas"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	lineas := make([]orders.LineaPedidoInput, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		lineas = append(lineas, orders.LineaPedidoInput{ProductoID: d.ProductoID, Cantidad: d.Cantidad})
	}
	pedido, err := h.uc.Crear(in.ClienteID, lineas)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "pedido", RegistroID: pedido.ID, Accion: "CREAR",
		ValorNuevo: fmt.Sprintf("cliente #%d, total %s", pedido.ClienteID, pedido.Total.String()),
		UsuarioID:  GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.PedidoFromEntity(pedido))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	pedidos, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for _, p := range pedidos {
		out = append(out, dto.PedidoFromEntity(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	pedido, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.PedidoFromEntity(pedido))
}

// Eliminar godoc
// @Summary      Eliminar pedido (borrado lógico)
// @Tags         pedidos
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [delete]
func (h *PedidoHandler) Eliminar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.Delete(id); err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "pedido", RegistroID: id, Accion: "ELIMINAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// CambiarEstado godoc
// @Summary      Cambiar estado de un pedido
// @Description  Solo transiciones de la tabla. Al pasar a ENTREGADO se
//
//	descuenta el stock de producto de todas las líneas en la misma
//	transacción; si alguna no tiene stock, nada cambia.
//
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.CambiarEstadoPedidoRequest  true  "estado destino"
// @Success      200   {object}  dto.CambioEstadoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/estado [patch]
func (h *PedidoHandler) CambiarEstado(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.CambiarEstadoPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	usuarioID := GetUsuarioID(c)
	res, err := h.uc.CambiarEstado(c.Context(), id, in.EstadoID, usuarioID)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "pedido", RegistroID: id, Accion: "CAMBIO_ESTADO",
		ValorNuevo: entity.NombreEstadoPedido[in.EstadoID],
		UsuarioID:  usuarioID,
	})
	out := dto.CambioEstadoResponse{Pedido: dto.PedidoFromEntity(res.Pedido)}
	for _, m := range res.Movimientos {
		out.Movimientos = append(out.Movimientos, dto.MovimientoFromEntity(m))
	}
	return c.JSON(out)
}

// Remision godoc
// @Summary      Descargar remisión de entrega (PDF)
// @Tags         pedidos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/remision [get]
func (h *PedidoHandler) Remision(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	pdfBytes, filename, err := h.pdfUC.DescargarRemisionPDF(c.Context(), id)
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
