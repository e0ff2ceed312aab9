package repository

import "github.com/mnavarrov/erp-planta-api/internal/domain/entity"

// PedidoRepository puerto de persistencia para pedidos de cliente y sus líneas.
type PedidoRepository interface {
	Create(p *entity.Pedido) error
	// GetByID carga el pedido con sus detalles, en el orden en que fueron creados.
	GetByID(id int64) (*entity.Pedido, error)
	List(limit, offset int) ([]*entity.Pedido, error)
	UpdateEstado(id int64, estadoID int) error
	Delete(id int64) error // borrado lógico
}
