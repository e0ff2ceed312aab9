package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// Ledger aplica movimientos de inventario de forma transaccional sobre
// materias primas y productos: bloqueo de fila (SELECT FOR UPDATE),
// verificación de no-negatividad antes de mutar y exactamente un registro
// append-only por cada cambio de stock.
type Ledger struct {
	txRunner TxRunner
}

// NewLedger construye el caso de uso.
func NewLedger(txRunner TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner}
}

// MovimientoInput entrada para aplicar un movimiento.
// Cantidad es siempre la magnitud (>= 0); la dirección la da Tipo.
type MovimientoInput struct {
	TipoItem      entity.TipoItem
	ItemID        int64
	Tipo          string          // ENTRADA | SALIDA | PRODUCCION
	Cantidad      decimal.Decimal // magnitud
	PedidoID      *int64
	OrdenCompraID *int64
	Observacion   string
	UsuarioID     *int64
	Fecha         time.Time // cero => now
	Grupo         string    // vacío => uuid nuevo
}

// ResultadoMovimiento resultado de aplicar un movimiento.
// CambioRealizado=false indica el corto circuito de delta cero: no se
// actualizó stock ni se insertó movimiento, y no es un error.
type ResultadoMovimiento struct {
	Item            *entity.ItemStock
	Movimiento      *entity.Movimiento
	CambioRealizado bool
}

func tipoValido(t string) bool {
	return t == entity.MovimientoEntrada || t == entity.MovimientoSalida || t == entity.MovimientoProduccion
}

// AplicarMovimientoEnTx es la primitiva del ledger: opera con repositorios
// ya atados a la transacción del caller. Bloquea la fila del ítem, calcula
// el nuevo stock, rechaza salidas que lo dejarían negativo y, si hay cambio,
// actualiza stock_actual e inserta exactamente un movimiento.
// El caller es responsable del Commit/Rollback (vía TxRunner).
func AplicarMovimientoEnTx(stockRepo repository.StockRepository, movRepo repository.MovimientoRepository, in MovimientoInput) (*ResultadoMovimiento, error) {
	if !tipoValido(in.Tipo) {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Cantidad.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}

	item, err := stockRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNoEncontrado
	}

	// Delta cero: ni update ni movimiento.
	if in.Cantidad.IsZero() {
		return &ResultadoMovimiento{Item: item, CambioRealizado: false}, nil
	}

	var nuevoStock decimal.Decimal
	if in.Tipo == entity.MovimientoSalida {
		nuevoStock = item.StockActual.Sub(in.Cantidad)
		if nuevoStock.IsNegative() {
			return nil, &domain.StockInsuficienteError{
				Item:       item.Nombre,
				Disponible: item.StockActual,
				Requerido:  in.Cantidad,
			}
		}
	} else {
		nuevoStock = item.StockActual.Add(in.Cantidad)
	}

	if err := stockRepo.UpdateStock(item.ID, nuevoStock); err != nil {
		return nil, err
	}

	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}
	grupo := in.Grupo
	if grupo == "" {
		grupo = uuid.New().String()
	}
	mov := &entity.Movimiento{
		Grupo:          grupo,
		ItemID:         item.ID,
		TipoMovimiento: in.Tipo,
		Cantidad:       in.Cantidad,
		Fecha:          fecha,
		PedidoID:       in.PedidoID,
		OrdenCompraID:  in.OrdenCompraID,
		Observacion:    in.Observacion,
		UsuarioID:      in.UsuarioID,
		CreatedAt:      fecha,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	item.StockActual = nuevoStock
	return &ResultadoMovimiento{Item: item, Movimiento: mov, CambioRealizado: true}, nil
}

// AjusteInput entrada para un ajuste manual de stock.
// Delta lleva signo: positivo entra, negativo sale. Tipo es opcional y solo
// aplica a deltas positivos (PRODUCCION para posteos manuales de producción);
// por defecto los positivos se registran como ENTRADA.
type AjusteInput struct {
	TipoItem  entity.TipoItem
	ItemID    int64
	Delta     decimal.Decimal
	Tipo      string
	Motivo    string
	UsuarioID *int64
}

// AjustarStock aplica un ajuste manual en su propia transacción.
// Sin referencia a pedido u orden: es la corrección ad hoc de bodega.
func (l *Ledger) AjustarStock(ctx context.Context, in AjusteInput) (*ResultadoMovimiento, error) {
	tipo := entity.MovimientoEntrada
	cantidad := in.Delta
	if in.Delta.IsNegative() {
		tipo = entity.MovimientoSalida
		cantidad = in.Delta.Neg()
	} else if in.Tipo != "" {
		if in.Tipo != entity.MovimientoEntrada && in.Tipo != entity.MovimientoProduccion {
			return nil, domain.ErrEntradaInvalida
		}
		tipo = in.Tipo
	}

	var res *ResultadoMovimiento
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		stockRepo, movRepo, err := r.PorTipo(in.TipoItem)
		if err != nil {
			return err
		}
		res, err = AplicarMovimientoEnTx(stockRepo, movRepo, MovimientoInput{
			TipoItem:    in.TipoItem,
			ItemID:      in.ItemID,
			Tipo:        tipo,
			Cantidad:    cantidad,
			Observacion: in.Motivo,
			UsuarioID:   in.UsuarioID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RegistrarEntradaCompra aplica una ENTRADA de materia prima ligada a una
// orden de compra, en su propia transacción. Lo usa la recepción de compras,
// donde cada línea es atómica por sí misma pero el lote de líneas no.
func (l *Ledger) RegistrarEntradaCompra(ctx context.Context, materiaPrimaID, ordenCompraID int64, cantidad decimal.Decimal, observacion string, usuarioID *int64) (*ResultadoMovimiento, error) {
	if !cantidad.IsPositive() {
		return nil, domain.ErrEntradaInvalida
	}
	var res *ResultadoMovimiento
	err := l.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		res, err = AplicarMovimientoEnTx(r.StockMateriaPrima, r.MovMateriaPrima, MovimientoInput{
			TipoItem:      entity.TipoItemMateriaPrima,
			ItemID:        materiaPrimaID,
			Tipo:          entity.MovimientoEntrada,
			Cantidad:      cantidad,
			OrdenCompraID: &ordenCompraID,
			Observacion:   observacion,
			UsuarioID:     usuarioID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
