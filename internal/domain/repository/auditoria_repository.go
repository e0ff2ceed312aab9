package repository

import "github.com/mnavarrov/erp-planta-api/internal/domain/entity"

// AuditoriaRepository puerto del log de auditoría.
type AuditoriaRepository interface {
	Create(a *entity.Auditoria) error
	List(entidad string, limit, offset int) ([]*entity.Auditoria, error)
}
