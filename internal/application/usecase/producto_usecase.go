package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// ProductoUseCase CRUD de productos terminados.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// CrearProductoInput datos de un producto nuevo.
type CrearProductoInput struct {
	Nombre      string
	Descripcion string
	PesoUnidad  decimal.Decimal // gramos por unidad
	Precio      decimal.Decimal
}

// Crear registra un producto con stock inicial cero.
func (uc *ProductoUseCase) Crear(in CrearProductoInput) (*entity.Producto, error) {
	if in.Nombre == "" || !in.PesoUnidad.IsPositive() || in.Precio.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	p := &entity.Producto{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		PesoUnidad:  in.PesoUnidad,
		Precio:      in.Precio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un producto o ErrNoEncontrado.
func (uc *ProductoUseCase) GetByID(id int64) (*entity.Producto, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNoEncontrado
	}
	return p, nil
}

// List lista productos paginados.
func (uc *ProductoUseCase) List(limit, offset int) ([]*entity.Producto, error) {
	return uc.repo.List(limit, offset)
}

// Actualizar cambia los datos comerciales del producto (no el stock).
func (uc *ProductoUseCase) Actualizar(id int64, in CrearProductoInput) (*entity.Producto, error) {
	p, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != "" {
		p.Nombre = in.Nombre
	}
	if in.Descripcion != "" {
		p.Descripcion = in.Descripcion
	}
	if in.PesoUnidad.IsPositive() {
		p.PesoUnidad = in.PesoUnidad
	}
	if !in.Precio.IsNegative() && !in.Precio.IsZero() {
		p.Precio = in.Precio
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Eliminar borra lógicamente el producto.
func (uc *ProductoUseCase) Eliminar(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
