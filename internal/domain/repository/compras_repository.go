package repository

import "github.com/mnavarrov/erp-planta-api/internal/domain/entity"

// CotizacionRepository puerto de persistencia para cotizaciones de proveedor.
type CotizacionRepository interface {
	Create(c *entity.Cotizacion) error
	// GetByID carga la cotización con sus detalles en orden de creación.
	GetByID(id int64) (*entity.Cotizacion, error)
	List(limit, offset int) ([]*entity.Cotizacion, error)
	Delete(id int64) error
}

// OrdenCompraRepository puerto de persistencia para órdenes de compra.
type OrdenCompraRepository interface {
	Create(o *entity.OrdenCompra) error
	GetByID(id int64) (*entity.OrdenCompra, error)
	List(limit, offset int) ([]*entity.OrdenCompra, error)
	UpdateEstado(id int64, estadoID int) error
	Delete(id int64) error
}
