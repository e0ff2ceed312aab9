package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// FormulaUseCase CRUD de fórmulas de producción.
type FormulaUseCase struct {
	repo         repository.FormulaRepository
	productoRepo repository.ProductoRepository
}

// NewFormulaUseCase construye el caso de uso.
func NewFormulaUseCase(repo repository.FormulaRepository, productoRepo repository.ProductoRepository) *FormulaUseCase {
	return &FormulaUseCase{repo: repo, productoRepo: productoRepo}
}

// DetalleFormulaInput materia prima y gramos por lote.
type DetalleFormulaInput struct {
	MateriaPrimaID  int64
	CantidadPorLote decimal.Decimal
}

// Crear registra una fórmula para un producto existente.
func (uc *FormulaUseCase) Crear(productoID int64, nombre string, rendimiento decimal.Decimal, detalles []DetalleFormulaInput) (*entity.Formula, error) {
	if productoID == 0 || !rendimiento.IsPositive() || len(detalles) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	producto, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNoEncontrado
	}
	now := time.Now()
	f := &entity.Formula{
		ProductoID:  productoID,
		Nombre:      nombre,
		Rendimiento: rendimiento,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, d := range detalles {
		if d.MateriaPrimaID == 0 || !d.CantidadPorLote.IsPositive() {
			return nil, domain.ErrEntradaInvalida
		}
		f.Detalles = append(f.Detalles, entity.DetalleFormula{
			MateriaPrimaID:  d.MateriaPrimaID,
			CantidadPorLote: d.CantidadPorLote,
		})
	}
	if err := uc.repo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetByID devuelve una fórmula con sus detalles o ErrNoEncontrado.
func (uc *FormulaUseCase) GetByID(id int64) (*entity.Formula, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNoEncontrado
	}
	return f, nil
}

// List lista fórmulas paginadas.
func (uc *FormulaUseCase) List(limit, offset int) ([]*entity.Formula, error) {
	return uc.repo.List(limit, offset)
}

// Eliminar borra lógicamente la fórmula.
func (uc *FormulaUseCase) Eliminar(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
