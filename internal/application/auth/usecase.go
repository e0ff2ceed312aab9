package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
	"github.com/mnavarrov/erp-planta-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// RegistrarInput datos para crear un usuario.
type RegistrarInput struct {
	Nombre   string
	Email    string
	Password string
	Rol      string
}

// Registrar crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailYaRegistrado si el email ya existe. El rol admin no
// puede auto-asignarse aquí; el primer administrador se crea con cmd/seed
// y los siguientes vía PATCH /usuarios/{id}/rol.
func (uc *UseCase) Registrar(in RegistrarInput) (*entity.Usuario, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrEntradaInvalida
	}
	switch in.Rol {
	case "", entity.RolOperario, entity.RolVentas:
	case entity.RolAdmin:
		return nil, domain.ErrProhibido
	default:
		return nil, domain.ErrEntradaInvalida
	}
	existente, err := uc.usuarioRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailYaRegistrado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Email
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolVentas
	}
	usuario := &entity.Usuario{
		Nombre:       nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		Estado:       "activo",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

// LoginResult token emitido y usuario autenticado.
type LoginResult struct {
	Token   string
	Usuario *entity.Usuario
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(email, password string) (*LoginResult, error) {
	usuario, err := uc.usuarioRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrNoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}
	if usuario.Estado != "activo" {
		return nil, domain.ErrProhibido
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Usuario: usuario}, nil
}
