package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/pkg/jwt"
)

// Locals keys para UsuarioID y Rol en Fiber.
const (
	LocalUsuarioID = "usuario_id"
	LocalRol       = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UsuarioID y Rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		usuarioID, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsuarioID, usuarioID)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// DevAuthMiddleware inyecta una identidad fija con rol admin sin validar
// token (AUTH_DEV_USER_ID). Solo debe montarse cuando APP_ENV == "development".
func DevAuthMiddleware(usuarioID int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalUsuarioID, usuarioID)
		c.Locals(LocalRol, entity.RolAdmin)
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol del token no está en la lista.
// Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUsuarioID devuelve el UsuarioID del contexto (después del middleware de auth).
func GetUsuarioID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalUsuarioID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// GetRol devuelve el Rol del contexto (después del middleware de auth).
func GetRol(c *fiber.Ctx) string {
	v := c.Locals(LocalRol)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
