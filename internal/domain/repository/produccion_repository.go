package repository

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// OrdenProduccionRepository puerto de persistencia para órdenes de producción.
type OrdenProduccionRepository interface {
	Create(o *entity.OrdenProduccion) error
	GetByID(id int64) (*entity.OrdenProduccion, error)
	// ExistePorPedido indica si ya hay una orden no borrada para el pedido.
	ExistePorPedido(pedidoID int64) (bool, error)
	List(limit, offset int) ([]*entity.OrdenProduccion, error)
	Finalizar(id int64, fin time.Time) error
}

// FormulaRepository puerto de persistencia para fórmulas de producción.
type FormulaRepository interface {
	Create(f *entity.Formula) error
	GetByID(id int64) (*entity.Formula, error)
	// FirstByProducto devuelve la primera fórmula no borrada del producto
	// (menor id) o nil si no hay ninguna.
	FirstByProducto(productoID int64) (*entity.Formula, error)
	List(limit, offset int) ([]*entity.Formula, error)
	Delete(id int64) error
}
