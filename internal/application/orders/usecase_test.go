package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/application/orders"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes map[int64]*entity.Cliente
}

func (r *fakeClienteRepo) Create(c *entity.Cliente) error { return nil }
func (r *fakeClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	return r.clientes[id], nil
}
func (r *fakeClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) { return nil, nil }
func (r *fakeClienteRepo) Update(c *entity.Cliente) error                    { return nil }
func (r *fakeClienteRepo) Delete(id int64) error                             { return nil }

type fakeProductoRepo struct {
	productos map[int64]*entity.Producto
}

func (r *fakeProductoRepo) Create(p *entity.Producto) error { return nil }
func (r *fakeProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	return r.productos[id], nil
}
func (r *fakeProductoRepo) List(limit, offset int) ([]*entity.Producto, error) { return nil, nil }
func (r *fakeProductoRepo) Update(p *entity.Producto) error                    { return nil }
func (r *fakeProductoRepo) Delete(id int64) error                              { return nil }

type fakePedidoRepo struct {
	pedidos map[int64]*entity.Pedido
	nextID  int64
}

func (r *fakePedidoRepo) Create(p *entity.Pedido) error {
	r.nextID++
	p.ID = r.nextID
	r.pedidos[p.ID] = p
	return nil
}
func (r *fakePedidoRepo) GetByID(id int64) (*entity.Pedido, error) { return r.pedidos[id], nil }
func (r *fakePedidoRepo) List(limit, offset int) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	for _, p := range r.pedidos {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakePedidoRepo) UpdateEstado(id int64, estadoID int) error {
	p, ok := r.pedidos[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.EstadoID = estadoID
	return nil
}
func (r *fakePedidoRepo) Delete(id int64) error {
	delete(r.pedidos, id)
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

// fakeTxRunner emula la transacción restaurando stock, movimientos y estados
// de pedido si fn falla, igual que un ROLLBACK.
type fakeTxRunner struct {
	pedidos   *fakePedidoRepo
	stockProd *fakeStockRepo
	movProd   *fakeMovRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	snapStock := make(map[int64]decimal.Decimal)
	for id, it := range f.stockProd.items {
		snapStock[id] = it.StockActual
	}
	snapEstados := make(map[int64]int)
	for id, p := range f.pedidos.pedidos {
		snapEstados[id] = p.EstadoID
	}
	nMov := len(f.movProd.movimientos)

	err := fn(inventory.TxRepos{
		StockProducto: f.stockProd,
		MovProducto:   f.movProd,
		Pedidos:       f.pedidos,
	})
	if err != nil {
		for id, v := range snapStock {
			f.stockProd.items[id].StockActual = v
		}
		for id, e := range snapEstados {
			f.pedidos.pedidos[id].EstadoID = e
		}
		f.movProd.movimientos = f.movProd.movimientos[:nMov]
		return err
	}
	return nil
}

// harness arma el caso de uso con todos los fakes compartiendo estado.
type harness struct {
	uc        *orders.UseCase
	pedidos   *fakePedidoRepo
	productos *fakeProductoRepo
	stockProd *fakeStockRepo
	movProd   *fakeMovRepo
}

func newHarness(productos ...*entity.Producto) *harness {
	pedidoRepo := &fakePedidoRepo{pedidos: make(map[int64]*entity.Pedido)}
	productoRepo := &fakeProductoRepo{productos: make(map[int64]*entity.Producto)}
	clienteRepo := &fakeClienteRepo{clientes: map[int64]*entity.Cliente{
		1: {ID: 1, Nombre: "Panadería La Espiga"},
	}}
	stockProd := &fakeStockRepo{items: make(map[int64]*entity.ItemStock)}
	for _, p := range productos {
		productoRepo.productos[p.ID] = p
		stockProd.items[p.ID] = &entity.ItemStock{ID: p.ID, Nombre: p.Nombre, StockActual: p.StockActual}
	}
	movProd := &fakeMovRepo{}
	tx := &fakeTxRunner{pedidos: pedidoRepo, stockProd: stockProd, movProd: movProd}
	return &harness{
		uc:        orders.NewUseCase(tx, pedidoRepo, productoRepo, clienteRepo),
		pedidos:   pedidoRepo,
		productos: productoRepo,
		stockProd: stockProd,
		movProd:   movProd,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransicionPermitida_Tabla(t *testing.T) {
	casos := []struct {
		nombre    string
		actual    int
		destino   int
		permitida bool
	}{
		{"pendiente a cancelado", entity.EstadoPedidoPendiente, entity.EstadoPedidoCancelado, true},
		{"pendiente a entregado", entity.EstadoPedidoPendiente, entity.EstadoPedidoEntregado, false},
		{"pendiente a en proceso directo", entity.EstadoPedidoPendiente, entity.EstadoPedidoEnProceso, false},
		{"listo a enviado", entity.EstadoPedidoListoParaEntrega, entity.EstadoPedidoEnviado, true},
		{"listo a entregado", entity.EstadoPedidoListoParaEntrega, entity.EstadoPedidoEntregado, true},
		{"listo a cancelado", entity.EstadoPedidoListoParaEntrega, entity.EstadoPedidoCancelado, false},
		{"enviado a entregado", entity.EstadoPedidoEnviado, entity.EstadoPedidoEntregado, true},
		{"enviado a listo (retroceso)", entity.EstadoPedidoEnviado, entity.EstadoPedidoListoParaEntrega, false},
		{"entregado es terminal", entity.EstadoPedidoEntregado, entity.EstadoPedidoCancelado, false},
		{"cancelado es terminal", entity.EstadoPedidoCancelado, entity.EstadoPedidoPendiente, false},
		{"mismo estado no es transición", entity.EstadoPedidoPendiente, entity.EstadoPedidoPendiente, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.permitida, orders.TransicionPermitida(c.actual, c.destino))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCrear_TomaPrecioDelProductoYCalculaTotal(t *testing.T) {
	h := newHarness(
		&entity.Producto{ID: 10, Nombre: "Pan campesino", Precio: dec("3500")},
		&entity.Producto{ID: 11, Nombre: "Mogolla", Precio: dec("1200")},
	)

	pedido, err := h.uc.Crear(1, []orders.LineaPedidoInput{
		{ProductoID: 10, Cantidad: dec("4")},
		{ProductoID: 11, Cantidad: dec("10")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoPedidoPendiente, pedido.EstadoID, "todo pedido nace PENDIENTE")
	require.Len(t, pedido.Detalles, 2)
	assert.True(t, pedido.Detalles[0].PrecioUnitario.Equal(dec("3500")))
	assert.True(t, pedido.Detalles[0].Subtotal.Equal(dec("14000")))
	assert.True(t, pedido.Total.Equal(dec("26000")), "total = suma de subtotales")
}

func TestCrear_ClienteInexistente(t *testing.T) {
	h := newHarness(&entity.Producto{ID: 10, Precio: dec("100")})
	_, err := h.uc.Crear(99, []orders.LineaPedidoInput{{ProductoID: 10, Cantidad: dec("1")}})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestCrear_SinLineas(t *testing.T) {
	h := newHarness()
	_, err := h.uc.Crear(1, nil)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCrear_LineaConCantidadCero(t *testing.T) {
	h := newHarness(&entity.Producto{ID: 10, Precio: dec("100")})
	_, err := h.uc.Crear(1, []orders.LineaPedidoInput{{ProductoID: 10, Cantidad: decimal.Zero}})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado
// ──────────────────────────────────────────────────────────────────────────────

func sembrarPedido(h *harness, estadoID int, detalles ...entity.DetallePedido) *entity.Pedido {
	p := &entity.Pedido{ClienteID: 1, EstadoID: estadoID, Detalles: detalles}
	_ = h.pedidos.Create(p)
	return p
}

func TestCambiarEstado_PendienteACancelado_SinMovimientos(t *testing.T) {
	h := newHarness()
	p := sembrarPedido(h, entity.EstadoPedidoPendiente)

	res, err := h.uc.CambiarEstado(context.Background(), p.ID, entity.EstadoPedidoCancelado, 1)
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoPedidoCancelado, res.Pedido.EstadoID)
	assert.Empty(t, res.Movimientos, "cancelar no toca inventario")
}

func TestCambiarEstado_TransicionFueraDeTabla(t *testing.T) {
	h := newHarness()
	p := sembrarPedido(h, entity.EstadoPedidoPendiente)

	_, err := h.uc.CambiarEstado(context.Background(), p.ID, entity.EstadoPedidoEntregado, 1)

	var trErr *domain.TransicionInvalidaError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "PENDIENTE", trErr.EstadoActual)
	assert.Equal(t, "ENTREGADO", trErr.EstadoSolicitado)
	assert.Contains(t, trErr.Permitidos, "CANCELADO")
}

func TestCambiarEstado_EstadoDesconocido(t *testing.T) {
	h := newHarness()
	p := sembrarPedido(h, entity.EstadoPedidoPendiente)

	_, err := h.uc.CambiarEstado(context.Background(), p.ID, 42, 1)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCambiarEstado_EntregaDescuentaTodasLasLineas(t *testing.T) {
	h := newHarness(
		&entity.Producto{ID: 10, Nombre: "Pan campesino", Precio: dec("3500"), StockActual: dec("20")},
		&entity.Producto{ID: 11, Nombre: "Mogolla", Precio: dec("1200"), StockActual: dec("50")},
	)
	p := sembrarPedido(h, entity.EstadoPedidoListoParaEntrega,
		entity.DetallePedido{ProductoID: 10, Cantidad: dec("4")},
		entity.DetallePedido{ProductoID: 11, Cantidad: dec("10")},
	)

	res, err := h.uc.CambiarEstado(context.Background(), p.ID, entity.EstadoPedidoEntregado, 7)
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoPedidoEntregado, res.Pedido.EstadoID)
	require.Len(t, res.Movimientos, 2, "una SALIDA por línea")
	assert.Equal(t, res.Movimientos[0].Grupo, res.Movimientos[1].Grupo,
		"las salidas de una entrega comparten grupo")
	for _, m := range res.Movimientos {
		assert.Equal(t, entity.MovimientoSalida, m.TipoMovimiento)
		require.NotNil(t, m.PedidoID)
		assert.Equal(t, p.ID, *m.PedidoID)
	}

	it10, _ := h.stockProd.Get(10)
	it11, _ := h.stockProd.Get(11)
	assert.True(t, it10.StockActual.Equal(dec("16")))
	assert.True(t, it11.StockActual.Equal(dec("40")))
}

func TestCambiarEstado_EntregaSinStock_NadaCambia(t *testing.T) {
	h := newHarness(
		&entity.Producto{ID: 10, Nombre: "Pan campesino", Precio: dec("3500"), StockActual: dec("20")},
		&entity.Producto{ID: 11, Nombre: "Mogolla", Precio: dec("1200"), StockActual: dec("50")},
	)
	p := sembrarPedido(h, entity.EstadoPedidoListoParaEntrega,
		entity.DetallePedido{ProductoID: 10, Cantidad: dec("4")},
		entity.DetallePedido{ProductoID: 11, Cantidad: dec("10")},
	)
	// El stock real de la segunda línea cae después del pre-vuelo (otro actor
	// lo consumió): la verificación definitiva dentro de la tx debe abortar
	// y revertir también la primera línea y el cambio de estado.
	h.stockProd.items[11].StockActual = dec("9")

	_, err := h.uc.CambiarEstado(context.Background(), p.ID, entity.EstadoPedidoEntregado, 7)

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)

	pedido, _ := h.pedidos.GetByID(p.ID)
	assert.Equal(t, entity.EstadoPedidoListoParaEntrega, pedido.EstadoID,
		"el estado no debe cambiar si alguna línea falla")
	it10, _ := h.stockProd.Get(10)
	assert.True(t, it10.StockActual.Equal(dec("20")),
		"la primera línea también se revierte")
	assert.Empty(t, h.movProd.movimientos, "no debe quedar movimiento alguno")
}

func TestCambiarEstado_EntregaPreVueloInsuficiente(t *testing.T) {
	h := newHarness(
		&entity.Producto{ID: 10, Nombre: "Pan campesino", Precio: dec("3500"), StockActual: dec("2")},
	)
	p := sembrarPedido(h, entity.EstadoPedidoListoParaEntrega,
		entity.DetallePedido{ProductoID: 10, Cantidad: dec("4")},
	)

	_, err := h.uc.CambiarEstado(context.Background(), p.ID, entity.EstadoPedidoEntregado, 7)

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Pan campesino", stockErr.Item)
	assert.Empty(t, h.movProd.movimientos)
}

func TestCambiarEstado_PedidoInexistente(t *testing.T) {
	h := newHarness()
	_, err := h.uc.CambiarEstado(context.Background(), 999, entity.EstadoPedidoCancelado, 1)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
