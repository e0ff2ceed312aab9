package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/auth"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/pkg/validate"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarUsuarioRequest  true  "nombre, email, password, rol opcional (operario o ventas)"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/registro [post]
func (h *AuthHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	usuario, err := h.uc.Registrar(auth.RegistrarInput{
		Nombre:   in.Nombre,
		Email:    in.Email,
		Password: in.Password,
		Rol:      in.Rol,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UsuarioFromEntity(usuario))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	res, err := h.uc.Login(in.Email, in.Password)
	if err != nil {
		// Email inexistente y password incorrecto responden igual.
		if errors.Is(err, domain.ErrNoEncontrado) || errors.Is(err, domain.ErrNoAutorizado) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return responderError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: res.Token, Usuario: dto.UsuarioFromEntity(res.Usuario)})
}
