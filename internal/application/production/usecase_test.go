package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/application/production"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos map[int64]*entity.Pedido
}

func (r *fakePedidoRepo) Create(p *entity.Pedido) error                    { return nil }
func (r *fakePedidoRepo) GetByID(id int64) (*entity.Pedido, error)         { return r.pedidos[id], nil }
func (r *fakePedidoRepo) List(limit, offset int) ([]*entity.Pedido, error) { return nil, nil }
func (r *fakePedidoRepo) UpdateEstado(id int64, estadoID int) error {
	p, ok := r.pedidos[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.EstadoID = estadoID
	return nil
}
func (r *fakePedidoRepo) Delete(id int64) error { return nil }

type fakeProductoRepo struct {
	productos map[int64]*entity.Producto
}

func (r *fakeProductoRepo) Create(p *entity.Producto) error                    { return nil }
func (r *fakeProductoRepo) GetByID(id int64) (*entity.Producto, error)         { return r.productos[id], nil }
func (r *fakeProductoRepo) List(limit, offset int) ([]*entity.Producto, error) { return nil, nil }
func (r *fakeProductoRepo) Update(p *entity.Producto) error                    { return nil }
func (r *fakeProductoRepo) Delete(id int64) error                              { return nil }

type fakeMateriaPrimaRepo struct {
	materias map[int64]*entity.MateriaPrima
}

func (r *fakeMateriaPrimaRepo) Create(m *entity.MateriaPrima) error { return nil }
func (r *fakeMateriaPrimaRepo) GetByID(id int64) (*entity.MateriaPrima, error) {
	return r.materias[id], nil
}
func (r *fakeMateriaPrimaRepo) List(limit, offset int) ([]*entity.MateriaPrima, error) {
	return nil, nil
}
func (r *fakeMateriaPrimaRepo) Update(m *entity.MateriaPrima) error { return nil }
func (r *fakeMateriaPrimaRepo) Delete(id int64) error               { return nil }

type fakeFormulaRepo struct {
	porProducto map[int64]*entity.Formula
}

func (r *fakeFormulaRepo) Create(f *entity.Formula) error            { return nil }
func (r *fakeFormulaRepo) GetByID(id int64) (*entity.Formula, error) { return nil, nil }
func (r *fakeFormulaRepo) FirstByProducto(productoID int64) (*entity.Formula, error) {
	return r.porProducto[productoID], nil
}
func (r *fakeFormulaRepo) List(limit, offset int) ([]*entity.Formula, error) { return nil, nil }
func (r *fakeFormulaRepo) Delete(id int64) error                             { return nil }

type fakeOrdenRepo struct {
	ordenes map[int64]*entity.OrdenProduccion
	nextID  int64
}

func (r *fakeOrdenRepo) Create(o *entity.OrdenProduccion) error {
	r.nextID++
	o.ID = r.nextID
	r.ordenes[o.ID] = o
	return nil
}
func (r *fakeOrdenRepo) GetByID(id int64) (*entity.OrdenProduccion, error) {
	return r.ordenes[id], nil
}
func (r *fakeOrdenRepo) ExistePorPedido(pedidoID int64) (bool, error) {
	for _, o := range r.ordenes {
		if o.PedidoID == pedidoID {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeOrdenRepo) List(limit, offset int) ([]*entity.OrdenProduccion, error) { return nil, nil }
func (r *fakeOrdenRepo) Finalizar(id int64, fin time.Time) error {
	o, ok := r.ordenes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	o.Estado = entity.EstadoProduccionFinalizada
	o.FechaFin = &fin
	return nil
}

type fakeStockRepo struct {
	items map[int64]*entity.ItemStock
}

func (r *fakeStockRepo) Get(id int64) (*entity.ItemStock, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copia := *it
	return &copia, nil
}
func (r *fakeStockRepo) GetForUpdate(id int64) (*entity.ItemStock, error) { return r.Get(id) }
func (r *fakeStockRepo) UpdateStock(id int64, nuevo decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	it.StockActual = nuevo
	return nil
}

type fakeMovRepo struct {
	movimientos []*entity.Movimiento
	nextID      int64
}

func (r *fakeMovRepo) Create(m *entity.Movimiento) error {
	r.nextID++
	m.ID = r.nextID
	copia := *m
	r.movimientos = append(r.movimientos, &copia)
	return nil
}
func (r *fakeMovRepo) SumPorOrdenCompra(itemID, ordenCompraID int64, tipo string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *fakeMovRepo) ListByItem(itemID int64, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return nil, nil
}

// fakeTxRunner restaura todo el estado compartido si fn falla (ROLLBACK).
type fakeTxRunner struct {
	pedidos   *fakePedidoRepo
	ordenes   *fakeOrdenRepo
	stockMP   *fakeStockRepo
	stockProd *fakeStockRepo
	movMP     *fakeMovRepo
	movProd   *fakeMovRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	snapMP := make(map[int64]decimal.Decimal)
	for id, it := range f.stockMP.items {
		snapMP[id] = it.StockActual
	}
	snapProd := make(map[int64]decimal.Decimal)
	for id, it := range f.stockProd.items {
		snapProd[id] = it.StockActual
	}
	snapEstados := make(map[int64]int)
	for id, p := range f.pedidos.pedidos {
		snapEstados[id] = p.EstadoID
	}
	snapOrdenes := make(map[int64]entity.OrdenProduccion)
	for id, o := range f.ordenes.ordenes {
		snapOrdenes[id] = *o
	}
	nMP, nProd := len(f.movMP.movimientos), len(f.movProd.movimientos)

	err := fn(inventory.TxRepos{
		StockMateriaPrima: f.stockMP,
		StockProducto:     f.stockProd,
		MovMateriaPrima:   f.movMP,
		MovProducto:       f.movProd,
		Pedidos:           f.pedidos,
		OrdenesProduccion: f.ordenes,
	})
	if err != nil {
		for id, v := range snapMP {
			f.stockMP.items[id].StockActual = v
		}
		for id, v := range snapProd {
			f.stockProd.items[id].StockActual = v
		}
		for id, e := range snapEstados {
			f.pedidos.pedidos[id].EstadoID = e
		}
		f.ordenes.ordenes = make(map[int64]*entity.OrdenProduccion)
		for id, o := range snapOrdenes {
			copia := o
			f.ordenes.ordenes[id] = &copia
		}
		f.movMP.movimientos = f.movMP.movimientos[:nMP]
		f.movProd.movimientos = f.movProd.movimientos[:nProd]
		return err
	}
	return nil
}

type harness struct {
	uc       *production.UseCase
	pedidos  *fakePedidoRepo
	ordenes  *fakeOrdenRepo
	stockMP  *fakeStockRepo
	movMP    *fakeMovRepo
	movProd  *fakeMovRepo
	formulas *fakeFormulaRepo
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newHarness arma el escenario base:
//
//	Producto 10 "Pan campesino": 450 g por unidad.
//	Fórmula: lote de 1000 g consume 600 g de harina (MP 1) y 20 g de sal (MP 2).
//	Pedido 5 PENDIENTE: 4 unidades del producto 10 → 1800 g → 2 lotes.
//	Consumo esperado: 1200 g de harina, 40 g de sal.
func newHarness(stockHarina, stockSal string) *harness {
	producto := &entity.Producto{ID: 10, Nombre: "Pan campesino", PesoUnidad: dec("450"), Precio: dec("3500")}
	pedidoRepo := &fakePedidoRepo{pedidos: map[int64]*entity.Pedido{
		5: {
			ID: 5, ClienteID: 1, EstadoID: entity.EstadoPedidoPendiente,
			Detalles: []entity.DetallePedido{{ProductoID: 10, Cantidad: dec("4")}},
		},
	}}
	productoRepo := &fakeProductoRepo{productos: map[int64]*entity.Producto{10: producto}}
	formulaRepo := &fakeFormulaRepo{porProducto: map[int64]*entity.Formula{
		10: {
			ID: 1, ProductoID: 10, Nombre: "Pan campesino estándar", Rendimiento: dec("1000"),
			Detalles: []entity.DetalleFormula{
				{MateriaPrimaID: 1, CantidadPorLote: dec("600")},
				{MateriaPrimaID: 2, CantidadPorLote: dec("20")},
			},
		},
	}}
	mpRepo := &fakeMateriaPrimaRepo{materias: map[int64]*entity.MateriaPrima{
		1: {ID: 1, Nombre: "Harina", StockActual: dec(stockHarina)},
		2: {ID: 2, Nombre: "Sal", StockActual: dec(stockSal)},
	}}
	ordenRepo := &fakeOrdenRepo{ordenes: make(map[int64]*entity.OrdenProduccion)}
	stockMP := &fakeStockRepo{items: map[int64]*entity.ItemStock{
		1: {ID: 1, Nombre: "Harina", StockActual: dec(stockHarina)},
		2: {ID: 2, Nombre: "Sal", StockActual: dec(stockSal)},
	}}
	stockProd := &fakeStockRepo{items: map[int64]*entity.ItemStock{
		10: {ID: 10, Nombre: "Pan campesino", StockActual: decimal.Zero},
	}}
	movMP := &fakeMovRepo{}
	movProd := &fakeMovRepo{}
	tx := &fakeTxRunner{
		pedidos: pedidoRepo, ordenes: ordenRepo,
		stockMP: stockMP, stockProd: stockProd,
		movMP: movMP, movProd: movProd,
	}
	return &harness{
		uc:       production.NewUseCase(tx, pedidoRepo, productoRepo, formulaRepo, mpRepo, ordenRepo),
		pedidos:  pedidoRepo,
		ordenes:  ordenRepo,
		stockMP:  stockMP,
		movMP:    movMP,
		movProd:  movProd,
		formulas: formulaRepo,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCrear_CalculaLotesPorCeilYDescuentaMateriaPrima(t *testing.T) {
	// 4 unidades × 450 g = 1800 g; 1800/1000 = 1.8 → 2 lotes completos.
	h := newHarness("5000", "100")

	op, err := h.uc.Crear(context.Background(), 5, 7)
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoProduccionEnProceso, op.Estado)
	assert.Equal(t, int64(5), op.PedidoID)
	assert.Equal(t, int64(7), op.OperarioID)
	assert.Nil(t, op.FechaFin, "la fecha fin queda vacía hasta finalizar")

	pedido, _ := h.pedidos.GetByID(5)
	assert.Equal(t, entity.EstadoPedidoEnProceso, pedido.EstadoID)

	harina, _ := h.stockMP.Get(1)
	sal, _ := h.stockMP.Get(2)
	assert.True(t, harina.StockActual.Equal(dec("3800")), "5000 - 600×2 lotes = 3800")
	assert.True(t, sal.StockActual.Equal(dec("60")), "100 - 20×2 lotes = 60")

	require.Len(t, h.movMP.movimientos, 2, "una SALIDA por materia prima")
	assert.Equal(t, h.movMP.movimientos[0].Grupo, h.movMP.movimientos[1].Grupo,
		"los descuentos de una orden comparten grupo")
	for _, m := range h.movMP.movimientos {
		assert.Equal(t, entity.MovimientoSalida, m.TipoMovimiento)
		require.NotNil(t, m.PedidoID)
		assert.Equal(t, int64(5), *m.PedidoID)
	}
}

func TestCrear_StockInsuficiente_NadaSeCrea(t *testing.T) {
	// Se necesitan 1200 g de harina pero solo hay 1000.
	h := newHarness("1000", "100")

	_, err := h.uc.Crear(context.Background(), 5, 7)

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Harina", stockErr.Item)
	assert.True(t, stockErr.Requerido.Equal(dec("1200")))

	assert.Empty(t, h.ordenes.ordenes, "no debe quedar orden creada")
	pedido, _ := h.pedidos.GetByID(5)
	assert.Equal(t, entity.EstadoPedidoPendiente, pedido.EstadoID, "el pedido no cambia de estado")
	assert.Empty(t, h.movMP.movimientos)
}

func TestCrear_SinFormula(t *testing.T) {
	h := newHarness("5000", "100")
	delete(h.formulas.porProducto, 10)

	_, err := h.uc.Crear(context.Background(), 5, 7)
	assert.ErrorIs(t, err, domain.ErrSinFormula)
	assert.Empty(t, h.ordenes.ordenes)
}

func TestCrear_OrdenDuplicadaParaElPedido(t *testing.T) {
	h := newHarness("5000", "100")

	_, err := h.uc.Crear(context.Background(), 5, 7)
	require.NoError(t, err)

	// El pedido quedó EN_PROCESO, pero aunque volviera a PENDIENTE la orden
	// existente bloquea un segundo intento.
	h.pedidos.pedidos[5].EstadoID = entity.EstadoPedidoPendiente
	_, err = h.uc.Crear(context.Background(), 5, 7)
	assert.ErrorIs(t, err, domain.ErrYaExiste)
}

func TestCrear_PedidoNoEstaPendiente(t *testing.T) {
	h := newHarness("5000", "100")
	h.pedidos.pedidos[5].EstadoID = entity.EstadoPedidoListoParaEntrega

	_, err := h.uc.Crear(context.Background(), 5, 7)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestCrear_PedidoInexistente(t *testing.T) {
	h := newHarness("5000", "100")
	_, err := h.uc.Crear(context.Background(), 99, 7)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalizar
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalizar_PosteaProductoYDejaPedidoListo(t *testing.T) {
	h := newHarness("5000", "100")
	op, err := h.uc.Crear(context.Background(), 5, 7)
	require.NoError(t, err)

	fin, err := h.uc.Finalizar(context.Background(), op.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoProduccionFinalizada, fin.Estado)
	require.NotNil(t, fin.FechaFin, "finalizar estampa la fecha fin")

	pedido, _ := h.pedidos.GetByID(5)
	assert.Equal(t, entity.EstadoPedidoListoParaEntrega, pedido.EstadoID)

	require.Len(t, h.movProd.movimientos, 1, "una entrada PRODUCCION por línea del pedido")
	m := h.movProd.movimientos[0]
	assert.Equal(t, entity.MovimientoProduccion, m.TipoMovimiento)
	assert.True(t, m.Cantidad.Equal(dec("4")), "se postean las unidades pedidas")
	assert.Equal(t, int64(10), m.ItemID)
}

func TestFinalizar_DosVeces_Rechazado(t *testing.T) {
	h := newHarness("5000", "100")
	op, err := h.uc.Crear(context.Background(), 5, 7)
	require.NoError(t, err)

	_, err = h.uc.Finalizar(context.Background(), op.ID, 7)
	require.NoError(t, err)

	_, err = h.uc.Finalizar(context.Background(), op.ID, 7)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	assert.Len(t, h.movProd.movimientos, 1, "no debe duplicar el posteo")
}

func TestFinalizar_OrdenInexistente(t *testing.T) {
	h := newHarness("5000", "100")
	_, err := h.uc.Finalizar(context.Background(), 99, 7)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
