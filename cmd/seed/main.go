// seed crea el usuario administrador inicial. El registro público solo
// admite roles operario y ventas, así que el primer admin entra por aquí.
// Idempotente: si el email ya existe no toca nada.
//
// Uso: go run ./cmd/seed
// Lee SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD y SEED_ADMIN_NOMBRE del entorno,
// además de la configuración de BD que usa cmd/api.
package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/infrastructure/postgres"
	"github.com/mnavarrov/erp-planta-api/pkg/config"
	"github.com/mnavarrov/erp-planta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	nombre := os.Getenv("SEED_ADMIN_NOMBRE")
	if nombre == "" {
		nombre = "Administrador"
	}
	if email == "" || password == "" {
		log.Fatal().Msg("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son obligatorios")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewUsuarioRepository(pool)
	existente, err := repo.FindByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario")
	}
	if existente != nil {
		log.Info().Str("email", email).Str("rol", existente.Rol).
			Msg("el usuario ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}
	now := time.Now()
	admin := &entity.Usuario{
		Nombre:       nombre,
		Email:        email,
		PasswordHash: string(hash),
		Rol:          entity.RolAdmin,
		Estado:       "activo",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Int64("id", admin.ID).Str("email", email).Msg("administrador creado")
}
