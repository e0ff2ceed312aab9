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

var _ repository.MateriaPrimaRepository = (*MateriaPrimaRepo)(nil)

// MateriaPrimaRepo implementación de MateriaPrimaRepository sobre PostgreSQL.
// El stock_actual nunca se escribe por aquí: eso es del StockRepo dentro del ledger.
type MateriaPrimaRepo struct {
	q Querier
}

// NewMateriaPrimaRepository construye el adaptador de materias primas.
func NewMateriaPrimaRepository(q Querier) *MateriaPrimaRepo {
	return &MateriaPrimaRepo{q: q}
}

// Create inserta la materia prima con stock cero y completa el ID generado.
func (r *MateriaPrimaRepo) Create(m *entity.MateriaPrima) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO materias_primas (nombre, unidad_medida, stock_actual, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $4)
		RETURNING id, stock_actual`,
		m.Nombre, m.UnidadMedida, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID, &m.StockActual)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert materia prima: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima. Devuelve nil si no existe o está borrada.
func (r *MateriaPrimaRepo) GetByID(id int64) (*entity.MateriaPrima, error) {
	var m entity.MateriaPrima
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, unidad_medida, stock_actual, created_at, updated_at
		FROM materias_primas WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&m.ID, &m.Nombre, &m.UnidadMedida, &m.StockActual, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get materia prima: %w", err)
	}
	return &m, nil
}

// List lista materias primas por nombre.
func (r *MateriaPrimaRepo) List(limit, offset int) ([]*entity.MateriaPrima, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, nombre, unidad_medida, stock_actual, created_at, updated_at
		FROM materias_primas WHERE deleted_at IS NULL
		ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materias primas: %w", err)
	}
	defer rows.Close()

	var out []*entity.MateriaPrima
	for rows.Next() {
		var m entity.MateriaPrima
		if err := rows.Scan(&m.ID, &m.Nombre, &m.UnidadMedida, &m.StockActual, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan materia prima: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Update actualiza nombre y unidad. No toca stock_actual.
func (r *MateriaPrimaRepo) Update(m *entity.MateriaPrima) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE materias_primas SET nombre = $2, unidad_medida = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`,
		m.ID, m.Nombre, m.UnidadMedida, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update materia prima: %w", err)
	}
	return nil
}

// Delete borra lógicamente la materia prima.
func (r *MateriaPrimaRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materias_primas SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete materia prima: %w", err)
	}
	return nil
}
