package usecase

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// MateriaPrimaUseCase CRUD de materias primas. El stock no se edita por
// aquí: los ajustes van por el ledger.
type MateriaPrimaUseCase struct {
	repo repository.MateriaPrimaRepository
}

// NewMateriaPrimaUseCase construye el caso de uso.
func NewMateriaPrimaUseCase(repo repository.MateriaPrimaRepository) *MateriaPrimaUseCase {
	return &MateriaPrimaUseCase{repo: repo}
}

// Crear registra una materia prima con stock inicial cero.
func (uc *MateriaPrimaUseCase) Crear(nombre, unidadMedida string) (*entity.MateriaPrima, error) {
	if nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if unidadMedida == "" {
		unidadMedida = "g"
	}
	now := time.Now()
	mp := &entity.MateriaPrima{
		Nombre:       nombre,
		UnidadMedida: unidadMedida,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(mp); err != nil {
		return nil, err
	}
	return mp, nil
}

// GetByID devuelve una materia prima o ErrNoEncontrado.
func (uc *MateriaPrimaUseCase) GetByID(id int64) (*entity.MateriaPrima, error) {
	mp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mp == nil {
		return nil, domain.ErrNoEncontrado
	}
	return mp, nil
}

// List lista materias primas paginadas.
func (uc *MateriaPrimaUseCase) List(limit, offset int) ([]*entity.MateriaPrima, error) {
	return uc.repo.List(limit, offset)
}

// Actualizar cambia nombre y unidad (no el stock).
func (uc *MateriaPrimaUseCase) Actualizar(id int64, nombre, unidadMedida string) (*entity.MateriaPrima, error) {
	mp, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if nombre != "" {
		mp.Nombre = nombre
	}
	if unidadMedida != "" {
		mp.UnidadMedida = unidadMedida
	}
	mp.UpdatedAt = time.Now()
	if err := uc.repo.Update(mp); err != nil {
		return nil, err
	}
	return mp, nil
}

// Eliminar borra lógicamente la materia prima.
func (uc *MateriaPrimaUseCase) Eliminar(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
