package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementación de CotizacionRepository sobre PostgreSQL.
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository construye el adaptador de cotizaciones.
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

// Create inserta la cotización y sus líneas, completando los IDs generados.
func (r *CotizacionRepo) Create(c *entity.Cotizacion) error {
	ctx := context.Background()
	err := r.q.QueryRow(ctx, `
		INSERT INTO cotizaciones (proveedor_id, fecha, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.ProveedorID, c.Fecha, c.Total, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert cotizacion: %w", err)
	}
	for i := range c.Detalles {
		det := &c.Detalles[i]
		det.CotizacionID = c.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO detalle_cotizaciones (cotizacion_id, materia_prima_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			det.CotizacionID, det.MateriaPrimaID, det.Cantidad, det.PrecioUnitario, det.Subtotal,
		).Scan(&det.ID)
		if err != nil {
			return fmt.Errorf("insert detalle cotizacion: %w", err)
		}
	}
	return nil
}

// GetByID carga la cotización con sus líneas en orden de creación.
func (r *CotizacionRepo) GetByID(id int64) (*entity.Cotizacion, error) {
	ctx := context.Background()
	var c entity.Cotizacion
	err := r.q.QueryRow(ctx, `
		SELECT id, proveedor_id, fecha, total, created_at, updated_at
		FROM cotizaciones WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&c.ID, &c.ProveedorID, &c.Fecha, &c.Total, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, cotizacion_id, materia_prima_id, cantidad, precio_unitario, subtotal
		FROM detalle_cotizaciones WHERE cotizacion_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get detalles cotizacion: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleCotizacion
		if err := rows.Scan(&d.ID, &d.CotizacionID, &d.MateriaPrimaID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle cotizacion: %w", err)
		}
		c.Detalles = append(c.Detalles, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// List lista cotizaciones (sin líneas), más recientes primero.
func (r *CotizacionRepo) List(limit, offset int) ([]*entity.Cotizacion, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, proveedor_id, fecha, total, created_at, updated_at
		FROM cotizaciones WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cotizacion
	for rows.Next() {
		var c entity.Cotizacion
		if err := rows.Scan(&c.ID, &c.ProveedorID, &c.Fecha, &c.Total, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Delete borra lógicamente la cotización.
func (r *CotizacionRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cotizaciones SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete cotizacion: %w", err)
	}
	return nil
}
