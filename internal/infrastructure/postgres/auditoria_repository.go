package postgres

import (
	"context"
	"fmt"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación de AuditoriaRepository sobre PostgreSQL.
// El log de auditoría es append-only.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador de auditoría.
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create inserta un registro de auditoría.
func (r *AuditoriaRepo) Create(a *entity.Auditoria) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO auditoria (entidad, registro_id, accion, valor_anterior, valor_nuevo, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		a.Entidad, a.RegistroID, a.Accion, a.ValorAnterior, a.ValorNuevo, a.UsuarioID, a.Fecha,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// List lista registros, más recientes primero, con filtro opcional por entidad.
func (r *AuditoriaRepo) List(entidad string, limit, offset int) ([]*entity.Auditoria, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, entidad, registro_id, accion, valor_anterior, valor_nuevo, usuario_id, fecha
		FROM auditoria WHERE ($1 = '' OR entidad = $1)
		ORDER BY fecha DESC, id DESC LIMIT $2 OFFSET $3`, entidad, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()

	var out []*entity.Auditoria
	for rows.Next() {
		var a entity.Auditoria
		if err := rows.Scan(&a.ID, &a.Entidad, &a.RegistroID, &a.Accion, &a.ValorAnterior, &a.ValorNuevo, &a.UsuarioID, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
