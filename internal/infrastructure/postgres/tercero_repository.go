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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de clientes.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create inserta el cliente y completa el ID generado.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO clientes (nombre, documento, direccion, telefono, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		c.Nombre, c.Documento, c.Direccion, c.Telefono, c.Email, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente. Devuelve nil si no existe o está borrado.
func (r *ClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, documento, direccion, telefono, email, created_at, updated_at
		FROM clientes WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&c.ID, &c.Nombre, &c.Documento, &c.Direccion, &c.Telefono, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List lista clientes por nombre.
func (r *ClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, nombre, documento, direccion, telefono, email, created_at, updated_at
		FROM clientes WHERE deleted_at IS NULL
		ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Documento, &c.Direccion, &c.Telefono, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update actualiza los datos de contacto.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE clientes SET nombre = $2, documento = $3, direccion = $4, telefono = $5, email = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.Nombre, c.Documento, c.Direccion, c.Telefono, c.Email, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete borra lógicamente el cliente.
func (r *ClienteRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación de ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador de proveedores.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create inserta el proveedor y completa el ID generado.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO proveedores (nombre, documento, direccion, telefono, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Nombre, p.Documento, p.Direccion, p.Telefono, p.Email, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor. Devuelve nil si no existe o está borrado.
func (r *ProveedorRepo) GetByID(id int64) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, documento, direccion, telefono, email, created_at, updated_at
		FROM proveedores WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&p.ID, &p.Nombre, &p.Documento, &p.Direccion, &p.Telefono, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// List lista proveedores por nombre.
func (r *ProveedorRepo) List(limit, offset int) ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, nombre, documento, direccion, telefono, email, created_at, updated_at
		FROM proveedores WHERE deleted_at IS NULL
		ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Documento, &p.Direccion, &p.Telefono, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza los datos de contacto.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE proveedores SET nombre = $2, documento = $3, direccion = $4, telefono = $5, email = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.Nombre, p.Documento, p.Direccion, p.Telefono, p.Email, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// Delete borra lógicamente el proveedor.
func (r *ProveedorRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE proveedores SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}
