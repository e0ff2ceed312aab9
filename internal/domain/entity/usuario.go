package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolOperario = "operario"
	RolVentas   = "ventas"
)

// Usuario cuenta de acceso al sistema. El ledger solo lo ve como un id opaco.
type Usuario struct {
	ID           int64
	Nombre       string
	Email        string
	PasswordHash string
	Rol          string
	Estado       string // "activo" | "inactivo"
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
