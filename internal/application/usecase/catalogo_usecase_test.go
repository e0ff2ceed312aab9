package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

type fakeMateriaPrimaRepo struct {
	materias map[int64]*entity.MateriaPrima
	nextID   int64
}

func (r *fakeMateriaPrimaRepo) Create(m *entity.MateriaPrima) error {
	r.nextID++
	m.ID = r.nextID
	r.materias[m.ID] = m
	return nil
}
func (r *fakeMateriaPrimaRepo) GetByID(id int64) (*entity.MateriaPrima, error) {
	return r.materias[id], nil
}
func (r *fakeMateriaPrimaRepo) List(limit, offset int) ([]*entity.MateriaPrima, error) {
	return nil, nil
}
func (r *fakeMateriaPrimaRepo) Update(m *entity.MateriaPrima) error { return nil }
func (r *fakeMateriaPrimaRepo) Delete(id int64) error {
	delete(r.materias, id)
	return nil
}

type fakeProductoRepo struct {
	productos map[int64]*entity.Producto
	nextID    int64
}

func (r *fakeProductoRepo) Create(p *entity.Producto) error {
	r.nextID++
	p.ID = r.nextID
	r.productos[p.ID] = p
	return nil
}
func (r *fakeProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	return r.productos[id], nil
}
func (r *fakeProductoRepo) List(limit, offset int) ([]*entity.Producto, error) { return nil, nil }
func (r *fakeProductoRepo) Update(p *entity.Producto) error                    { return nil }
func (r *fakeProductoRepo) Delete(id int64) error                              { return nil }

type fakeUsuarioRepo struct {
	usuarios map[int64]*entity.Usuario
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error                    { return nil }
func (r *fakeUsuarioRepo) GetByID(id int64) (*entity.Usuario, error)         { return r.usuarios[id], nil }
func (r *fakeUsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) { return nil, nil }
func (r *fakeUsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) { return nil, nil }
func (r *fakeUsuarioRepo) Update(u *entity.Usuario) error                    { return nil }
func (r *fakeUsuarioRepo) Delete(id int64) error                             { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// MateriaPrimaUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestMateriaPrima_Crear_StockInicialCeroYUnidadPorDefecto(t *testing.T) {
	uc := usecase.NewMateriaPrimaUseCase(&fakeMateriaPrimaRepo{materias: make(map[int64]*entity.MateriaPrima)})

	mp, err := uc.Crear("Harina de trigo", "")
	require.NoError(t, err)

	assert.True(t, mp.StockActual.IsZero(), "toda materia prima nace con stock cero")
	assert.Equal(t, "g", mp.UnidadMedida, "sin unidad explícita se asume gramos")
}

func TestMateriaPrima_Crear_SinNombre(t *testing.T) {
	uc := usecase.NewMateriaPrimaUseCase(&fakeMateriaPrimaRepo{materias: make(map[int64]*entity.MateriaPrima)})
	_, err := uc.Crear("", "g")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestMateriaPrima_Actualizar_NoTocaElStock(t *testing.T) {
	repo := &fakeMateriaPrimaRepo{materias: make(map[int64]*entity.MateriaPrima)}
	uc := usecase.NewMateriaPrimaUseCase(repo)

	mp, err := uc.Crear("Harina", "g")
	require.NoError(t, err)
	repo.materias[mp.ID].StockActual = dec("5000") // stock movido por el ledger

	actualizada, err := uc.Actualizar(mp.ID, "Harina de trigo", "kg")
	require.NoError(t, err)

	assert.Equal(t, "Harina de trigo", actualizada.Nombre)
	assert.True(t, actualizada.StockActual.Equal(dec("5000")),
		"editar el catálogo jamás modifica el stock")
}

func TestMateriaPrima_GetByID_Inexistente(t *testing.T) {
	uc := usecase.NewMateriaPrimaUseCase(&fakeMateriaPrimaRepo{materias: make(map[int64]*entity.MateriaPrima)})
	_, err := uc.GetByID(99)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductoUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProducto_Crear_ValidaPesoYPrecio(t *testing.T) {
	uc := usecase.NewProductoUseCase(&fakeProductoRepo{productos: make(map[int64]*entity.Producto)})

	_, err := uc.Crear(usecase.CrearProductoInput{Nombre: "Pan", PesoUnidad: decimal.Zero, Precio: dec("100")})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "el peso por unidad debe ser positivo")

	_, err = uc.Crear(usecase.CrearProductoInput{Nombre: "Pan", PesoUnidad: dec("450"), Precio: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "el precio no puede ser negativo")

	p, err := uc.Crear(usecase.CrearProductoInput{Nombre: "Pan", PesoUnidad: dec("450"), Precio: dec("3500")})
	require.NoError(t, err)
	assert.True(t, p.StockActual.IsZero(), "todo producto nace con stock cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// UsuarioUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuario_CambiarRol_SoloRolesConocidos(t *testing.T) {
	repo := &fakeUsuarioRepo{usuarios: map[int64]*entity.Usuario{
		1: {ID: 1, Nombre: "María", Rol: entity.RolVentas, Estado: "activo"},
	}}
	uc := usecase.NewUsuarioUseCase(repo)

	u, err := uc.CambiarRol(1, entity.RolOperario)
	require.NoError(t, err)
	assert.Equal(t, entity.RolOperario, u.Rol)

	_, err = uc.CambiarRol(1, "superusuario")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestUsuario_Desactivar(t *testing.T) {
	repo := &fakeUsuarioRepo{usuarios: map[int64]*entity.Usuario{
		1: {ID: 1, Nombre: "María", Rol: entity.RolVentas, Estado: "activo"},
	}}
	uc := usecase.NewUsuarioUseCase(repo)

	require.NoError(t, uc.Desactivar(1))
	assert.Equal(t, "inactivo", repo.usuarios[1].Estado)

	err := uc.Desactivar(99)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
