package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// ClienteHandler maneja el catálogo de clientes.
type ClienteHandler struct {
	uc        *usecase.ClienteUseCase
	auditoria *audit.Service
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase, auditoria *audit.Service) *ClienteHandler {
	return &ClienteHandler{uc: uc, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TerceroRequest  true  "datos del cliente"
// @Success      201   {object}  dto.TerceroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Crear(c *fiber.Ctx) error {
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	cliente, err := h.uc.Crear(terceroInput(in))
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "cliente", RegistroID: cliente.ID, Accion: "CREAR",
		ValorNuevo: cliente.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.ClienteFromEntity(cliente))
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.TerceroResponse
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	clientes, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.TerceroResponse, 0, len(clientes))
	for _, cl := range clientes {
		out = append(out, dto.ClienteFromEntity(cl))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.TerceroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	cliente, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.ClienteFromEntity(cliente))
}

// Actualizar godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.TerceroRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TerceroResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Actualizar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.Actualizar(id, terceroInput(in))
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "cliente", RegistroID: cliente.ID, Accion: "ACTUALIZAR",
		ValorNuevo: cliente.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.JSON(dto.ClienteFromEntity(cliente))
}

// Eliminar godoc
// @Summary      Eliminar cliente (borrado lógico)
// @Tags         clientes
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [delete]
func (h *ClienteHandler) Eliminar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.Eliminar(id); err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "cliente", RegistroID: id, Accion: "ELIMINAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// ProveedorHandler maneja el catálogo de proveedores.
type ProveedorHandler struct {
	uc        *usecase.ProveedorUseCase
	auditoria *audit.Service
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase, auditoria *audit.Service) *ProveedorHandler {
	return &ProveedorHandler{uc: uc, auditoria: auditoria}
}

// Crear godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TerceroRequest  true  "datos del proveedor"
// @Success      201   {object}  dto.TerceroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProveedorHandler) Crear(c *fiber.Ctx) error {
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	proveedor, err := h.uc.Crear(terceroInput(in))
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "proveedor", RegistroID: proveedor.ID, Accion: "CREAR",
		ValorNuevo: proveedor.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.Status(fiber.StatusCreated).JSON(dto.ProveedorFromEntity(proveedor))
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.TerceroResponse
// @Router       /api/proveedores [get]
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	proveedores, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.TerceroResponse, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, dto.ProveedorFromEntity(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.TerceroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	proveedor, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.ProveedorFromEntity(proveedor))
}

// Actualizar godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.TerceroRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TerceroResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [put]
func (h *ProveedorHandler) Actualizar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	proveedor, err := h.uc.Actualizar(id, terceroInput(in))
	if err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "proveedor", RegistroID: proveedor.ID, Accion: "ACTUALIZAR",
		ValorNuevo: proveedor.Nombre, UsuarioID: GetUsuarioID(c),
	})
	return c.JSON(dto.ProveedorFromEntity(proveedor))
}

// Eliminar godoc
// @Summary      Eliminar proveedor (borrado lógico)
// @Tags         proveedores
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [delete]
func (h *ProveedorHandler) Eliminar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.Eliminar(id); err != nil {
		return responderError(c, err)
	}
	h.auditoria.Registrar(audit.Entrada{
		Entidad: "proveedor", RegistroID: id, Accion: "ELIMINAR",
		UsuarioID: GetUsuarioID(c),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

func terceroInput(in dto.TerceroRequest) usecase.TerceroInput {
	return usecase.TerceroInput{
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
	}
}
