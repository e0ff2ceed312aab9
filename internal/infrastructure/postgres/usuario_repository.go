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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create inserta el usuario y completa el ID generado. Email único.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO usuarios (nombre, email, password_hash, rol, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		u.Nombre, u.Email, u.PasswordHash, u.Rol, u.Estado, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario. Devuelve nil si no existe o está borrado.
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, email, password_hash, rol, estado, created_at, updated_at
		FROM usuarios WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// FindByEmail busca por email. Devuelve nil si no existe.
func (r *UsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, email, password_hash, rol, estado, created_at, updated_at
		FROM usuarios WHERE email = $1 AND deleted_at IS NULL`, email).Scan(
		&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por email: %w", err)
	}
	return &u, nil
}

// List lista usuarios por nombre.
func (r *UsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, nombre, email, password_hash, rol, estado, created_at, updated_at
		FROM usuarios WHERE deleted_at IS NULL
		ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Update actualiza nombre, rol y estado.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE usuarios SET nombre = $2, rol = $3, estado = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`,
		u.ID, u.Nombre, u.Rol, u.Estado, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// Delete borra lógicamente el usuario.
func (r *UsuarioRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}
