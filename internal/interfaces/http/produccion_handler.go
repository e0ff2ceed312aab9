package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/production"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// ProduccionHandler maneja órdenes de producción.
type ProduccionHandler struct {
	uc        *production.UseCase
	auditoria *audit.Service
}

// NewProduccionHandler construye el handler.
func NewProduccionHandler(uc *production.UseCase, auditoria *audit.Service) *ProduccionHandler {
	return &ProduccionHandler{uc: uc, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear orden de producción para un pedido PENDIENTE
// @Description  Verifica el stock de TODAS las materias primas requeridas
//
//	antes de crear nada. Si alcanza: crea la orden, pasa el pedido a
//	EN_PROCESO y descuenta la materia prima, todo en una transacción.
//	El operario es el usuario del token.
//
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearOrdenProduccionRequest  true  "pedido origen"
// @Success      201   {object}  dto.OrdenProduccionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ordenes-produccion [post]
func (h *ProduccionHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearOrdenProduccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	operarioID := GetUsuarioID(c)
	op, err := h.uc.Crear(c.Context(), in.PedidoID, operarioID)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "orden_produccion", RegistroID: op.ID, Accion: "CREAR",
		UsuarioID: operarioID,
	})
	return c.Status(fiber.StatusCreated).JSON(dto.OrdenProduccionFromEntity(op))
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.OrdenProduccionResponse
// @Router       /api/ordenes-produccion [get]
func (h *ProduccionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	ops, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.OrdenProduccionResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, dto.OrdenProduccionFromEntity(op))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de producción
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.OrdenProduccionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-produccion/{id} [get]
func (h *ProduccionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	op, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.OrdenProduccionFromEntity(op))
}

// Finalizar godoc
// @Summary      Finalizar orden de producción
// @Description  Estampa la fecha fin, postea el producto terminado de cada
//
//	línea del pedido como PRODUCCION y deja el pedido en
//	LISTO_PARA_ENTREGA, todo en una transacción.
//
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.OrdenProduccionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes-produccion/{id}/finalizar [patch]
func (h *ProduccionHandler) Finalizar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	usuarioID := GetUsuarioID(c)
	op, err := h.uc.Finalizar(c.Context(), id, usuarioID)
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "orden_produccion", RegistroID: op.ID, Accion: "CAMBIO_ESTADO",
		ValorNuevo: op.Estado, UsuarioID: usuarioID,
	})
	return c.JSON(dto.OrdenProduccionFromEntity(op))
}
