package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL.
// El stock_actual nunca se escribe por aquí: eso es del StockRepo dentro del ledger.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de productos.
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create inserta el producto con stock cero y completa el ID generado.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO productos (nombre, descripcion, peso_unidad, precio, stock_actual, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		RETURNING id, stock_actual`,
		p.Nombre, p.Descripcion, p.PesoUnidad, p.Precio, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.StockActual)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto. Devuelve nil si no existe o está borrado.
func (r *ProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, descripcion, peso_unidad, precio, stock_actual, created_at, updated_at
		FROM productos WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.PesoUnidad, &p.Precio, &p.StockActual, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List lista productos por nombre.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, nombre, descripcion, peso_unidad, precio, stock_actual, created_at, updated_at
		FROM productos WHERE deleted_at IS NULL
		ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.PesoUnidad, &p.Precio, &p.StockActual, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza los datos comerciales. No toca stock_actual.
func (r *ProductoRepo) Update(p *entity.Producto) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE productos SET nombre = $2, descripcion = $3, peso_unidad = $4, precio = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.Nombre, p.Descripcion, p.PesoUnidad, p.Precio, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// Delete borra lógicamente el producto.
func (r *ProductoRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}
