package dto

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// RegistrarUsuarioRequest body para POST /api/auth/registro.
type RegistrarUsuarioRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"omitempty,oneof=operario ventas"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UsuarioResponse usuario sin credenciales.
type UsuarioResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// UsuarioFromEntity convierte la entidad a respuesta. Nunca expone el hash.
func UsuarioFromEntity(u *entity.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse token emitido y usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// CambiarRolRequest body para PATCH /api/usuarios/{id}/rol.
type CambiarRolRequest struct {
	Rol string `json:"rol" validate:"required,oneof=admin operario ventas"`
}

// AuditoriaResponse registro del log de auditoría.
type AuditoriaResponse struct {
	ID            int64     `json:"id"`
	Entidad       string    `json:"entidad"`
	RegistroID    int64     `json:"registro_id"`
	Accion        string    `json:"accion"`
	ValorAnterior string    `json:"valor_anterior,omitempty"`
	ValorNuevo    string    `json:"valor_nuevo,omitempty"`
	UsuarioID     int64     `json:"usuario_id"`
	Fecha         time.Time `json:"fecha"`
}

// AuditoriaFromEntity convierte la entidad a respuesta.
func AuditoriaFromEntity(a *entity.Auditoria) AuditoriaResponse {
	return AuditoriaResponse{
		ID:            a.ID,
		Entidad:       a.Entidad,
		RegistroID:    a.RegistroID,
		Accion:        a.Accion,
		ValorAnterior: a.ValorAnterior,
		ValorNuevo:    a.ValorNuevo,
		UsuarioID:     a.UsuarioID,
		Fecha:         a.Fecha,
	}
}
