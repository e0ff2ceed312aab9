package repository

import "github.com/mnavarrov/erp-planta-api/internal/domain/entity"

// MateriaPrimaRepository CRUD de materias primas. StockActual no se toca
// por aquí: eso es del StockRepository dentro del ledger.
type MateriaPrimaRepository interface {
	Create(m *entity.MateriaPrima) error
	GetByID(id int64) (*entity.MateriaPrima, error)
	List(limit, offset int) ([]*entity.MateriaPrima, error)
	Update(m *entity.MateriaPrima) error
	Delete(id int64) error
}

// ProductoRepository CRUD de productos terminados.
type ProductoRepository interface {
	Create(p *entity.Producto) error
	GetByID(id int64) (*entity.Producto, error)
	List(limit, offset int) ([]*entity.Producto, error)
	Update(p *entity.Producto) error
	Delete(id int64) error
}

// ClienteRepository CRUD de clientes.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id int64) (*entity.Cliente, error)
	List(limit, offset int) ([]*entity.Cliente, error)
	Update(c *entity.Cliente) error
	Delete(id int64) error
}

// ProveedorRepository CRUD de proveedores.
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(id int64) (*entity.Proveedor, error)
	List(limit, offset int) ([]*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
	Delete(id int64) error
}
