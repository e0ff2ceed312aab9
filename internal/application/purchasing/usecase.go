package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
	"github.com/mnavarrov/erp-planta-api/pkg/logger"
)

// UseCase casos de uso de compras: cotizaciones, órdenes de compra y
// recepción de mercancía contra el ledger de materia prima.
type UseCase struct {
	ledger          *inventory.Ledger
	cotizacionRepo  repository.CotizacionRepository
	ordenCompraRepo repository.OrdenCompraRepository
	proveedorRepo   repository.ProveedorRepository
	movMateriaPrima repository.MovimientoRepository
	log             *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	ledger *inventory.Ledger,
	cotizacionRepo repository.CotizacionRepository,
	ordenCompraRepo repository.OrdenCompraRepository,
	proveedorRepo repository.ProveedorRepository,
	movMateriaPrima repository.MovimientoRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		ledger:          ledger,
		cotizacionRepo:  cotizacionRepo,
		ordenCompraRepo: ordenCompraRepo,
		proveedorRepo:   proveedorRepo,
		movMateriaPrima: movMateriaPrima,
		log:             log,
	}
}

// LineaCotizacionInput línea de una cotización nueva. Cantidad en gramos.
type LineaCotizacionInput struct {
	MateriaPrimaID int64
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// CrearCotizacion registra una cotización de proveedor con sus líneas.
func (uc *UseCase) CrearCotizacion(proveedorID int64, lineas []LineaCotizacionInput) (*entity.Cotizacion, error) {
	if proveedorID == 0 || len(lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	proveedor, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}

	now := time.Now()
	cot := &entity.Cotizacion{
		ProveedorID: proveedorID,
		Fecha:       now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for _, l := range lineas {
		if l.MateriaPrimaID == 0 || !l.Cantidad.IsPositive() || l.PrecioUnitario.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		subtotal := l.Cantidad.Mul(l.PrecioUnitario)
		cot.Detalles = append(cot.Detalles, entity.DetalleCotizacion{
			MateriaPrimaID: l.MateriaPrimaID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	cot.Total = total

	if err := uc.cotizacionRepo.Create(cot); err != nil {
		return nil, err
	}
	return cot, nil
}

// GetCotizacion devuelve una cotización con sus líneas.
func (uc *UseCase) GetCotizacion(id int64) (*entity.Cotizacion, error) {
	cot, err := uc.cotizacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cot == nil {
		return nil, domain.ErrNoEncontrado
	}
	return cot, nil
}

// ListCotizaciones lista cotizaciones paginadas.
func (uc *UseCase) ListCotizaciones(limit, offset int) ([]*entity.Cotizacion, error) {
	return uc.cotizacionRepo.List(limit, offset)
}

// CrearOrdenCompra abre una orden de compra en PENDIENTE sobre una cotización.
func (uc *UseCase) CrearOrdenCompra(cotizacionID int64) (*entity.OrdenCompra, error) {
	cot, err := uc.cotizacionRepo.GetByID(cotizacionID)
	if err != nil {
		return nil, err
	}
	if cot == nil {
		return nil, domain.ErrNoEncontrado
	}
	now := time.Now()
	orden := &entity.OrdenCompra{
		CotizacionID: cotizacionID,
		EstadoID:     entity.EstadoOCPendiente,
		Fecha:        now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.ordenCompraRepo.Create(orden); err != nil {
		return nil, err
	}
	return orden, nil
}

// GetOrdenCompra devuelve una orden de compra.
func (uc *UseCase) GetOrdenCompra(id int64) (*entity.OrdenCompra, error) {
	orden, err := uc.ordenCompraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNoEncontrado
	}
	return orden, nil
}

// ListOrdenesCompra lista órdenes de compra paginadas.
func (uc *UseCase) ListOrdenesCompra(limit, offset int) ([]*entity.OrdenCompra, error) {
	return uc.ordenCompraRepo.List(limit, offset)
}

// ItemRecepcion cantidad recibida de una materia prima en una recepción parcial.
type ItemRecepcion struct {
	MateriaPrimaID int64
	Cantidad       decimal.Decimal
}

// ResultadoRecepcion orden actualizada y entradas efectivamente registradas.
// LineasFallidas cuenta las líneas cuya entrada falló y fue saltada.
type ResultadoRecepcion struct {
	Orden          *entity.OrdenCompra
	Movimientos    []*entity.Movimiento
	LineasFallidas int
}

// RecibirOrden cambia el estado de una orden de compra y registra las
// entradas de materia prima que correspondan.
//
// Recepción total (RECIBIDO): por cada línea de la cotización se calcula lo
// pendiente (cantidad cotizada menos entradas previas contra esta orden) y
// se registra una ENTRADA solo por ese pendiente; líneas ya recibidas se
// saltan sin duplicar movimientos.
//
// Recepción parcial (PARCIALMENTE_RECIBIDO): el caller declara qué recibió
// y se registra una ENTRADA por cada ítem, sin cálculo de pendientes.
//
// En ambos casos cada entrada es atómica por sí misma, pero el lote de
// líneas NO va en una sola transacción: una línea que falla se registra en
// el log y el resto continúa. El cambio de estado de la orden se aplica
// primero y no depende del resultado de las líneas.
func (uc *UseCase) RecibirOrden(ctx context.Context, ordenID int64, nuevoEstado int, itemsParciales []ItemRecepcion, usuarioID int64) (*ResultadoRecepcion, error) {
	if _, ok := entity.NombreEstadoOC[nuevoEstado]; !ok {
		return nil, domain.ErrEntradaInvalida
	}
	orden, err := uc.ordenCompraRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNoEncontrado
	}
	if nuevoEstado == entity.EstadoOCParcialmenteRecibido && len(itemsParciales) == 0 {
		return nil, domain.ErrEntradaInvalida
	}

	if err := uc.ordenCompraRepo.UpdateEstado(ordenID, nuevoEstado); err != nil {
		return nil, err
	}
	orden.EstadoID = nuevoEstado

	res := &ResultadoRecepcion{Orden: orden}
	switch nuevoEstado {
	case entity.EstadoOCRecibido:
		uc.recibirTotal(ctx, orden, usuarioID, res)
	case entity.EstadoOCParcialmenteRecibido:
		uc.recibirParcial(ctx, orden, itemsParciales, usuarioID, res)
	}
	return res, nil
}

// recibirTotal registra lo pendiente de cada línea de la cotización origen.
func (uc *UseCase) recibirTotal(ctx context.Context, orden *entity.OrdenCompra, usuarioID int64, res *ResultadoRecepcion) {
	cot, err := uc.cotizacionRepo.GetByID(orden.CotizacionID)
	if err != nil || cot == nil {
		uc.log.Error().Err(err).
			Int64("orden_compra_id", orden.ID).
			Int64("cotizacion_id", orden.CotizacionID).
			Msg("recepción total: cotización origen no disponible")
		return
	}
	for _, det := range cot.Detalles {
		recibido, err := uc.movMateriaPrima.SumPorOrdenCompra(det.MateriaPrimaID, orden.ID, entity.MovimientoEntrada)
		if err != nil {
			uc.log.Error().Err(err).
				Int64("orden_compra_id", orden.ID).
				Int64("materia_prima_id", det.MateriaPrimaID).
				Msg("recepción total: no se pudo calcular lo recibido, línea saltada")
			res.LineasFallidas++
			continue
		}
		pendiente := det.Cantidad.Sub(recibido)
		if !pendiente.IsPositive() {
			continue // ya recibido por completo, sin movimiento duplicado
		}
		obs := fmt.Sprintf("Recepción total orden de compra #%d", orden.ID)
		mov, err := uc.ledger.RegistrarEntradaCompra(ctx, det.MateriaPrimaID, orden.ID, pendiente, obs, &usuarioID)
		if err != nil {
			// Política deliberada: la línea que falla se registra y se sigue
			// con las demás; no se revierte el lote.
			uc.log.Error().Err(err).
				Int64("orden_compra_id", orden.ID).
				Int64("materia_prima_id", det.MateriaPrimaID).
				Str("pendiente", pendiente.String()).
				Msg("recepción total: entrada fallida, línea saltada")
			res.LineasFallidas++
			continue
		}
		res.Movimientos = append(res.Movimientos, mov.Movimiento)
	}
}

// recibirParcial registra las cantidades declaradas por el caller.
func (uc *UseCase) recibirParcial(ctx context.Context, orden *entity.OrdenCompra, items []ItemRecepcion, usuarioID int64, res *ResultadoRecepcion) {
	for _, item := range items {
		obs := fmt.Sprintf("Recepción parcial orden de compra #%d", orden.ID)
		mov, err := uc.ledger.RegistrarEntradaCompra(ctx, item.MateriaPrimaID, orden.ID, item.Cantidad, obs, &usuarioID)
		if err != nil {
			uc.log.Error().Err(err).
				Int64("orden_compra_id", orden.ID).
				Int64("materia_prima_id", item.MateriaPrimaID).
				Str("cantidad", item.Cantidad.String()).
				Msg("recepción parcial: entrada fallida, ítem saltado")
			res.LineasFallidas++
			continue
		}
		res.Movimientos = append(res.Movimientos, mov.Movimiento)
	}
}
