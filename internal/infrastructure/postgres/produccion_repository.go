package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.OrdenProduccionRepository = (*OrdenProduccionRepo)(nil)

// OrdenProduccionRepo implementación de OrdenProduccionRepository sobre PostgreSQL.
type OrdenProduccionRepo struct {
	q Querier
}

// NewOrdenProduccionRepository construye el adaptador de órdenes de producción.
func NewOrdenProduccionRepository(q Querier) *OrdenProduccionRepo {
	return &OrdenProduccionRepo{q: q}
}

// Create inserta la orden de producción y completa el ID generado.
func (r *OrdenProduccionRepo) Create(o *entity.OrdenProduccion) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO ordenes_produccion (pedido_id, operario_id, fecha_inicio, fecha_fin, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		o.PedidoID, o.OperarioID, o.FechaInicio, o.FechaFin, o.Estado, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert orden produccion: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de producción. Devuelve nil si no existe o está borrada.
func (r *OrdenProduccionRepo) GetByID(id int64) (*entity.OrdenProduccion, error) {
	var o entity.OrdenProduccion
	err := r.q.QueryRow(context.Background(), `
		SELECT id, pedido_id, operario_id, fecha_inicio, fecha_fin, estado, created_at, updated_at
		FROM ordenes_produccion WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&o.ID, &o.PedidoID, &o.OperarioID, &o.FechaInicio, &o.FechaFin, &o.Estado, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden produccion: %w", err)
	}
	return &o, nil
}

// ExistePorPedido indica si ya hay una orden no borrada para el pedido.
func (r *OrdenProduccionRepo) ExistePorPedido(pedidoID int64) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM ordenes_produccion WHERE pedido_id = $1 AND deleted_at IS NULL
		)`, pedidoID).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe orden produccion: %w", err)
	}
	return existe, nil
}

// List lista órdenes de producción, más recientes primero.
func (r *OrdenProduccionRepo) List(limit, offset int) ([]*entity.OrdenProduccion, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, pedido_id, operario_id, fecha_inicio, fecha_fin, estado, created_at, updated_at
		FROM ordenes_produccion WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes produccion: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrdenProduccion
	for rows.Next() {
		var o entity.OrdenProduccion
		if err := rows.Scan(&o.ID, &o.PedidoID, &o.OperarioID, &o.FechaInicio, &o.FechaFin, &o.Estado, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden produccion: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// Finalizar marca la orden como FINALIZADA y fija la fecha de fin.
func (r *OrdenProduccionRepo) Finalizar(id int64, fin time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE ordenes_produccion SET estado = $2, fecha_fin = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		id, entity.EstadoProduccionFinalizada, fin,
	)
	if err != nil {
		return fmt.Errorf("finalizar orden produccion: %w", err)
	}
	return nil
}

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL.
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador de fórmulas.
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// Create inserta la fórmula y sus líneas, completando los IDs generados.
func (r *FormulaRepo) Create(f *entity.Formula) error {
	ctx := context.Background()
	err := r.q.QueryRow(ctx, `
		INSERT INTO formulas (producto_id, nombre, rendimiento, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		f.ProductoID, f.Nombre, f.Rendimiento, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("insert formula: %w", err)
	}
	for i := range f.Detalles {
		det := &f.Detalles[i]
		det.FormulaID = f.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO detalle_formulas (formula_id, materia_prima_id, cantidad_por_lote)
			VALUES ($1, $2, $3)
			RETURNING id`,
			det.FormulaID, det.MateriaPrimaID, det.CantidadPorLote,
		).Scan(&det.ID)
		if err != nil {
			return fmt.Errorf("insert detalle formula: %w", err)
		}
	}
	return nil
}

// GetByID carga la fórmula con sus líneas.
func (r *FormulaRepo) GetByID(id int64) (*entity.Formula, error) {
	var f entity.Formula
	err := r.q.QueryRow(context.Background(), `
		SELECT id, producto_id, nombre, rendimiento, created_at, updated_at
		FROM formulas WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&f.ID, &f.ProductoID, &f.Nombre, &f.Rendimiento, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}
	if err := r.cargarDetalles(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FirstByProducto devuelve la primera fórmula no borrada del producto
// (menor id) o nil si no hay ninguna.
func (r *FormulaRepo) FirstByProducto(productoID int64) (*entity.Formula, error) {
	var f entity.Formula
	err := r.q.QueryRow(context.Background(), `
		SELECT id, producto_id, nombre, rendimiento, created_at, updated_at
		FROM formulas WHERE producto_id = $1 AND deleted_at IS NULL
		ORDER BY id LIMIT 1`, productoID).Scan(
		&f.ID, &f.ProductoID, &f.Nombre, &f.Rendimiento, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula por producto: %w", err)
	}
	if err := r.cargarDetalles(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// List lista fórmulas con sus líneas.
func (r *FormulaRepo) List(limit, offset int) ([]*entity.Formula, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, producto_id, nombre, rendimiento, created_at, updated_at
		FROM formulas WHERE deleted_at IS NULL
		ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Formula
	for rows.Next() {
		var f entity.Formula
		if err := rows.Scan(&f.ID, &f.ProductoID, &f.Nombre, &f.Rendimiento, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range out {
		if err := r.cargarDetalles(f); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete borra lógicamente la fórmula.
func (r *FormulaRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE formulas SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete formula: %w", err)
	}
	return nil
}

func (r *FormulaRepo) cargarDetalles(f *entity.Formula) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, formula_id, materia_prima_id, cantidad_por_lote
		FROM detalle_formulas WHERE formula_id = $1 ORDER BY id`, f.ID)
	if err != nil {
		return fmt.Errorf("get detalles formula: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleFormula
		if err := rows.Scan(&d.ID, &d.FormulaID, &d.MateriaPrimaID, &d.CantidadPorLote); err != nil {
			return fmt.Errorf("scan detalle formula: %w", err)
		}
		f.Detalles = append(f.Detalles, d)
	}
	return rows.Err()
}
