package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mnavarrov/erp-planta-api/internal/application/auth"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	pkgjwt "github.com/mnavarrov/erp-planta-api/pkg/jwt"
)

type fakeUsuarioRepo struct {
	usuarios map[int64]*entity.Usuario
	nextID   int64
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[int64]*entity.Usuario)}
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	r.nextID++
	u.ID = r.nextID
	r.usuarios[u.ID] = u
	return nil
}
func (r *fakeUsuarioRepo) GetByID(id int64) (*entity.Usuario, error) { return r.usuarios[id], nil }
func (r *fakeUsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) { return nil, nil }
func (r *fakeUsuarioRepo) Update(u *entity.Usuario) error                    { return nil }
func (r *fakeUsuarioRepo) Delete(id int64) error                             { return nil }

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "erp-planta-test"}

func TestRegistrar_HasheaPasswordYAsignaRolPorDefecto(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewUseCase(repo, testJWT)

	u, err := uc.Registrar(auth.RegistrarInput{
		Nombre:   "María",
		Email:    "maria@planta.co",
		Password: "contraseña-larga",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RolVentas, u.Rol, "sin rol explícito se asigna ventas")
	assert.Equal(t, "activo", u.Estado)
	assert.NotEqual(t, "contraseña-larga", u.PasswordHash, "el password jamás se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("contraseña-larga")))
}

func TestRegistrar_EmailDuplicado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewUseCase(repo, testJWT)

	_, err := uc.Registrar(auth.RegistrarInput{Email: "maria@planta.co", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Registrar(auth.RegistrarInput{Email: "maria@planta.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailYaRegistrado)
}

func TestRegistrar_RolAdminNoSePuedeAutoasignar(t *testing.T) {
	uc := auth.NewUseCase(newFakeUsuarioRepo(), testJWT)

	_, err := uc.Registrar(auth.RegistrarInput{
		Email: "intruso@planta.co", Password: "contraseña-larga", Rol: entity.RolAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrProhibido,
		"el registro público no puede crear administradores; para eso está cmd/seed")

	_, err = uc.Registrar(auth.RegistrarInput{
		Email: "intruso@planta.co", Password: "contraseña-larga", Rol: "superusuario",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestLogin_EmiteTokenConUsuarioYRol(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewUseCase(repo, testJWT)

	creado, err := uc.Registrar(auth.RegistrarInput{
		Email: "maria@planta.co", Password: "contraseña-larga", Rol: entity.RolOperario,
	})
	require.NoError(t, err)

	res, err := uc.Login("maria@planta.co", "contraseña-larga")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	usuarioID, rol, err := pkgjwt.Parse(testJWT.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, creado.ID, usuarioID)
	assert.Equal(t, entity.RolOperario, rol)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewUseCase(repo, testJWT)

	_, err := uc.Registrar(auth.RegistrarInput{Email: "maria@planta.co", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.Login("maria@planta.co", "clave-equivocada")
	assert.ErrorIs(t, err, domain.ErrNoAutorizado)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := auth.NewUseCase(newFakeUsuarioRepo(), testJWT)
	_, err := uc.Login("nadie@planta.co", "lo-que-sea")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestLogin_UsuarioInactivoNoEntra(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewUseCase(repo, testJWT)

	u, err := uc.Registrar(auth.RegistrarInput{Email: "maria@planta.co", Password: "contraseña-larga"})
	require.NoError(t, err)
	u.Estado = "inactivo"

	_, err = uc.Login("maria@planta.co", "contraseña-larga")
	assert.ErrorIs(t, err, domain.ErrProhibido,
		"un usuario desactivado no puede iniciar sesión aunque la clave sea correcta")
}
