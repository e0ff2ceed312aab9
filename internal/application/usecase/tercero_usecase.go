package usecase

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// TerceroInput datos comunes de clientes y proveedores.
type TerceroInput struct {
	Nombre    string
	Documento string
	Direccion string
	Telefono  string
	Email     string
}

// ClienteUseCase CRUD de clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Crear registra un cliente.
func (uc *ClienteUseCase) Crear(in TerceroInput) (*entity.Cliente, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	c := &entity.Cliente{
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID devuelve un cliente o ErrNoEncontrado.
func (uc *ClienteUseCase) GetByID(id int64) (*entity.Cliente, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNoEncontrado
	}
	return c, nil
}

// List lista clientes paginados.
func (uc *ClienteUseCase) List(limit, offset int) ([]*entity.Cliente, error) {
	return uc.repo.List(limit, offset)
}

// Actualizar modifica los datos de contacto.
func (uc *ClienteUseCase) Actualizar(id int64, in TerceroInput) (*entity.Cliente, error) {
	c, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	aplicarTercero(&c.Nombre, &c.Documento, &c.Direccion, &c.Telefono, &c.Email, in)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Eliminar borra lógicamente el cliente.
func (uc *ClienteUseCase) Eliminar(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// ProveedorUseCase CRUD de proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Crear registra un proveedor.
func (uc *ProveedorUseCase) Crear(in TerceroInput) (*entity.Proveedor, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	p := &entity.Proveedor{
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve un proveedor o ErrNoEncontrado.
func (uc *ProveedorUseCase) GetByID(id int64) (*entity.Proveedor, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNoEncontrado
	}
	return p, nil
}

// List lista proveedores paginados.
func (uc *ProveedorUseCase) List(limit, offset int) ([]*entity.Proveedor, error) {
	return uc.repo.List(limit, offset)
}

// Actualizar modifica los datos de contacto.
func (uc *ProveedorUseCase) Actualizar(id int64, in TerceroInput) (*entity.Proveedor, error) {
	p, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	aplicarTercero(&p.Nombre, &p.Documento, &p.Direccion, &p.Telefono, &p.Email, in)
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Eliminar borra lógicamente el proveedor.
func (uc *ProveedorUseCase) Eliminar(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func aplicarTercero(nombre, documento, direccion, telefono, email *string, in TerceroInput) {
	if in.Nombre != "" {
		*nombre = in.Nombre
	}
	if in.Documento != "" {
		*documento = in.Documento
	}
	if in.Direccion != "" {
		*direccion = in.Direccion
	}
	if in.Telefono != "" {
		*telefono = in.Telefono
	}
	if in.Email != "" {
		*email = in.Email
	}
}
