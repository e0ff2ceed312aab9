package repository

import "github.com/mnavarrov/erp-planta-api/internal/domain/entity"

// UsuarioRepository puerto de persistencia para usuarios.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id int64) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
	List(limit, offset int) ([]*entity.Usuario, error)
	Update(u *entity.Usuario) error
	Delete(id int64) error
}
