package usecase

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// UsuarioUseCase administración de usuarios (el alta va por auth.Registrar).
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// GetByID devuelve un usuario o ErrNoEncontrado.
func (uc *UsuarioUseCase) GetByID(id int64) (*entity.Usuario, error) {
	u, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNoEncontrado
	}
	return u, nil
}

// List lista usuarios paginados.
func (uc *UsuarioUseCase) List(limit, offset int) ([]*entity.Usuario, error) {
	return uc.repo.List(limit, offset)
}

// CambiarRol asigna un rol válido a un usuario.
func (uc *UsuarioUseCase) CambiarRol(id int64, rol string) (*entity.Usuario, error) {
	switch rol {
	case entity.RolAdmin, entity.RolOperario, entity.RolVentas:
	default:
		return nil, domain.ErrEntradaInvalida
	}
	u, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	u.Rol = rol
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Desactivar marca el usuario como inactivo (no puede iniciar sesión).
func (uc *UsuarioUseCase) Desactivar(id int64) error {
	u, err := uc.GetByID(id)
	if err != nil {
		return err
	}
	u.Estado = "inactivo"
	u.UpdatedAt = time.Now()
	return uc.repo.Update(u)
}
