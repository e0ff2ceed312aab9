package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	apphttp "github.com/mnavarrov/erp-planta-api/internal/interfaces/http"
	"github.com/mnavarrov/erp-planta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el ledger detrás del handler de ajustes
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	items map[int64]*entity.ItemStock
}

func (r *fakeStockRepo) Get(id int64) (*entity.ItemStock, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *fakeStockRepo) GetForUpdate(id int64) (*entity.ItemStock, error) { return r.Get(id) }

func (r *fakeStockRepo) UpdateStock(id int64, nuevo decimal.Decimal) error {
	r.items[id].StockActual = nuevo
	return nil
}

type fakeMovRepo struct {
	movs []*entity.Movimiento
}

func (r *fakeMovRepo) Create(m *entity.Movimiento) error {
	m.ID = int64(len(r.movs) + 1)
	r.movs = append(r.movs, m)
	return nil
}

func (r *fakeMovRepo) SumPorOrdenCompra(itemID, ordenCompraID int64, tipo string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeMovRepo) ListByItem(itemID int64, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return r.movs, nil
}

type fakeTxRunner struct {
	repos inventory.TxRepos
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(inventory.TxRepos) error) error {
	return fn(f.repos)
}

type fakeAuditoriaRepo struct {
	eventos []*entity.Auditoria
}

func (r *fakeAuditoriaRepo) Create(a *entity.Auditoria) error {
	r.eventos = append(r.eventos, a)
	return nil
}

func (r *fakeAuditoriaRepo) List(entidad string, limit, offset int) ([]*entity.Auditoria, error) {
	return r.eventos, nil
}

// buildAjusteApp monta el handler de ajustes de materia prima sobre un
// ledger con una sola materia prima (id 1, "Harina") y el stock indicado.
func buildAjusteApp(stockInicial string) (*fiber.App, *fakeStockRepo, *fakeAuditoriaRepo) {
	stock := &fakeStockRepo{items: map[int64]*entity.ItemStock{
		1: {ID: 1, Nombre: "Harina", StockActual: decimal.RequireFromString(stockInicial)},
	}}
	runner := &fakeTxRunner{repos: inventory.TxRepos{
		StockMateriaPrima: stock,
		MovMateriaPrima:   &fakeMovRepo{},
	}}
	audRepo := &fakeAuditoriaRepo{}
	auditoria := audit.NewService(audRepo, logger.Nop())
	h := apphttp.NewMateriaPrimaHandler(nil, inventory.NewLedger(runner), nil, auditoria)

	app := fiber.New()
	app.Post("/api/materias-primas/:id/ajustes", h.AjustarStock)
	return app, stock, audRepo
}

func postAjuste(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/materias-primas/1/ajustes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del cuerpo de respuesta del ajuste manual
// ──────────────────────────────────────────────────────────────────────────────

func TestAjustarStock_DeltaPositivo_ReportaCambioRealizado(t *testing.T) {
	app, stock, _ := buildAjusteApp("100")
	status, raw := postAjuste(t, app, `{"delta":"50","motivo":"conteo físico"}`)

	assert.Equal(t, http.StatusOK, status)

	var out dto.AjusteStockResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.CambioRealizado, "un delta distinto de cero debe reportar cambio_realizado=true")
	assert.True(t, out.StockActual.Equal(decimal.RequireFromString("150")))
	require.NotNil(t, out.Movimiento, "el ajuste efectivo debe devolver su movimiento")
	assert.Equal(t, entity.MovimientoEntrada, out.Movimiento.TipoMovimiento)
	assert.True(t, stock.items[1].StockActual.Equal(decimal.RequireFromString("150")))
}

func TestAjustarStock_DeltaCero_ReportaSinCambio(t *testing.T) {
	app, stock, audRepo := buildAjusteApp("100")
	status, raw := postAjuste(t, app, `{"delta":"0","motivo":"conteo sin diferencias"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"cambio_realizado":false`,
		"el cliente debe poder distinguir que no hubo nada que ajustar")

	var out dto.AjusteStockResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.CambioRealizado)
	assert.Nil(t, out.Movimiento, "sin cambio no hay movimiento en el ledger")
	assert.True(t, out.StockActual.Equal(decimal.RequireFromString("100")))
	assert.True(t, stock.items[1].StockActual.Equal(decimal.RequireFromString("100")))
	assert.Empty(t, audRepo.eventos, "un ajuste sin cambio no genera evento de auditoría")
}

func TestAjustarStock_SalidaMayorQueStock_Retorna409(t *testing.T) {
	app, stock, _ := buildAjusteApp("30")
	status, raw := postAjuste(t, app, `{"delta":"-31","motivo":"merma"}`)

	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(raw), "STOCK_INSUFICIENTE")
	assert.True(t, stock.items[1].StockActual.Equal(decimal.RequireFromString("30")),
		"un ajuste rechazado no debe tocar el stock")
}
