package audit

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
	"github.com/mnavarrov/erp-planta-api/pkg/logger"
)

// Entrada datos de un evento auditable.
type Entrada struct {
	Entidad       string
	RegistroID    int64
	Accion        string
	ValorAnterior string
	ValorNuevo    string
	UsuarioID     int64
}

// Service registra eventos en el log de auditoría. Es fire-and-forget:
// un fallo al escribir se loguea y jamás bloquea ni revierte la operación
// que lo originó.
type Service struct {
	repo repository.AuditoriaRepository
	log  *logger.Logger
}

// NewService construye el servicio.
func NewService(repo repository.AuditoriaRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Registrar persiste el evento. Nunca retorna error al caller.
func (s *Service) Registrar(in Entrada) {
	a := &entity.Auditoria{
		Entidad:       in.Entidad,
		RegistroID:    in.RegistroID,
		Accion:        in.Accion,
		ValorAnterior: in.ValorAnterior,
		ValorNuevo:    in.ValorNuevo,
		UsuarioID:     in.UsuarioID,
		Fecha:         time.Now(),
	}
	if err := s.repo.Create(a); err != nil {
		s.log.Error().Err(err).
			Str("entidad", in.Entidad).
			Int64("registro_id", in.RegistroID).
			Str("accion", in.Accion).
			Msg("auditoría: no se pudo registrar el evento")
	}
}

// List devuelve eventos, opcionalmente filtrados por entidad.
func (s *Service) List(entidad string, limit, offset int) ([]*entity.Auditoria, error) {
	return s.repo.List(entidad, limit, offset)
}
