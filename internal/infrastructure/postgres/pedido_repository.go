package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación de PedidoRepository sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create inserta el pedido y sus líneas, completando los IDs generados.
func (r *PedidoRepo) Create(p *entity.Pedido) error {
	ctx := context.Background()
	query := `
		INSERT INTO pedidos (cliente_id, estado_id, fecha, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ClienteID, p.EstadoID, p.Fecha, p.Total, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	for i := range p.Detalles {
		det := &p.Detalles[i]
		det.PedidoID = p.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO detalle_pedidos (pedido_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			det.PedidoID, det.ProductoID, det.Cantidad, det.PrecioUnitario, det.Subtotal,
		).Scan(&det.ID)
		if err != nil {
			return fmt.Errorf("insert detalle pedido: %w", err)
		}
	}
	return nil
}

// GetByID carga el pedido con sus líneas en orden de creación. Devuelve nil
// si no existe o está borrado.
func (r *PedidoRepo) GetByID(id int64) (*entity.Pedido, error) {
	ctx := context.Background()
	query := `
		SELECT id, cliente_id, estado_id, fecha, total, created_at, updated_at
		FROM pedidos WHERE id = $1 AND deleted_at IS NULL`
	var p entity.Pedido
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ClienteID, &p.EstadoID, &p.Fecha, &p.Total, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, pedido_id, producto_id, cantidad, precio_unitario, subtotal
		FROM detalle_pedidos WHERE pedido_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get detalles pedido: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetallePedido
		if err := rows.Scan(&d.ID, &d.PedidoID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle pedido: %w", err)
		}
		p.Detalles = append(p.Detalles, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// List lista pedidos (sin líneas), más recientes primero.
func (r *PedidoRepo) List(limit, offset int) ([]*entity.Pedido, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, cliente_id, estado_id, fecha, total, created_at, updated_at
		FROM pedidos WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(&p.ID, &p.ClienteID, &p.EstadoID, &p.Fecha, &p.Total, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// UpdateEstado cambia solo el estado del pedido.
func (r *PedidoRepo) UpdateEstado(id int64, estadoID int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET estado_id = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, estadoID,
	)
	if err != nil {
		return fmt.Errorf("update estado pedido: %w", err)
	}
	return nil
}

// Delete borra lógicamente el pedido.
func (r *PedidoRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	return nil
}
