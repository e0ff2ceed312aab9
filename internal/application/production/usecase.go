package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var mil = decimal.NewFromInt(1000)

// UseCase casos de uso de órdenes de producción: creación con reserva de
// materia prima (dos pasadas: verificar todo, luego actuar todo) y
// finalización con posteo del producto terminado.
type UseCase struct {
	txRunner         inventory.TxRunner
	pedidoRepo       repository.PedidoRepository
	productoRepo     repository.ProductoRepository
	formulaRepo      repository.FormulaRepository
	materiaPrimaRepo repository.MateriaPrimaRepository
	ordenRepo        repository.OrdenProduccionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	formulaRepo repository.FormulaRepository,
	materiaPrimaRepo repository.MateriaPrimaRepository,
	ordenRepo repository.OrdenProduccionRepository,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		pedidoRepo:       pedidoRepo,
		productoRepo:     productoRepo,
		formulaRepo:      formulaRepo,
		materiaPrimaRepo: materiaPrimaRepo,
		ordenRepo:        ordenRepo,
	}
}

// requerimiento consumo total de una materia prima para la orden, en gramos.
type requerimiento struct {
	materiaPrimaID int64
	nombre         string
	cantidad       decimal.Decimal
}

// Crear abre una orden de producción para un pedido PENDIENTE.
//
// Por cada línea del pedido: gramos necesarios = cantidad × peso por unidad
// del producto; lotes = ceil(gramos / rendimiento de la fórmula); consumo
// por materia prima = cantidad por lote × lotes. Los consumos se acumulan
// por materia prima y se verifican TODOS contra el stock antes de crear
// nada. Solo entonces, en una sola transacción: se crea la orden, el pedido
// pasa a EN_PROCESO y se descuenta una SALIDA por materia prima.
func (uc *UseCase) Crear(ctx context.Context, pedidoID, operarioID int64) (*entity.OrdenProduccion, error) {
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNoEncontrado
	}
	if pedido.EstadoID != entity.EstadoPedidoPendiente {
		return nil, fmt.Errorf("pedido #%d en estado %s, solo se produce desde PENDIENTE: %w",
			pedidoID, entity.NombreEstadoPedido[pedido.EstadoID], domain.ErrTransicionInvalida)
	}
	existe, err := uc.ordenRepo.ExistePorPedido(pedidoID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.ErrYaExiste
	}

	// Primera pasada: calcular el consumo total por materia prima,
	// en el orden de las líneas del pedido.
	var orden []int64
	porMateria := make(map[int64]*requerimiento)
	for _, det := range pedido.Detalles {
		producto, err := uc.productoRepo.GetByID(det.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNoEncontrado
		}
		formula, err := uc.formulaRepo.FirstByProducto(det.ProductoID)
		if err != nil {
			return nil, err
		}
		if formula == nil {
			return nil, fmt.Errorf("producto %q: %w", producto.Nombre, domain.ErrSinFormula)
		}
		if !formula.Rendimiento.IsPositive() {
			return nil, fmt.Errorf("fórmula #%d con rendimiento inválido: %w", formula.ID, domain.ErrEntradaInvalida)
		}
		gramos := det.Cantidad.Mul(producto.PesoUnidad)
		lotes := gramos.Div(formula.Rendimiento).Ceil()
		for _, df := range formula.Detalles {
			total := df.CantidadPorLote.Mul(lotes)
			req, ok := porMateria[df.MateriaPrimaID]
			if !ok {
				req = &requerimiento{materiaPrimaID: df.MateriaPrimaID}
				porMateria[df.MateriaPrimaID] = req
				orden = append(orden, df.MateriaPrimaID)
			}
			req.cantidad = req.cantidad.Add(total)
		}
	}

	// Segunda pasada de verificación: todo el consumo debe caber en stock
	// antes de crear cualquier cosa.
	for _, id := range orden {
		req := porMateria[id]
		mp, err := uc.materiaPrimaRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if mp == nil {
			return nil, domain.ErrNoEncontrado
		}
		req.nombre = mp.Nombre
		if mp.StockActual.LessThan(req.cantidad) {
			return nil, &domain.StockInsuficienteError{
				Item:       mp.Nombre,
				Disponible: mp.StockActual,
				Requerido:  req.cantidad,
			}
		}
	}

	now := time.Now()
	grupo := uuid.New().String()
	op := &entity.OrdenProduccion{
		PedidoID:    pedidoID,
		OperarioID:  operarioID,
		FechaInicio: now,
		FechaFin:    nil, // se estampa al finalizar
		Estado:      entity.EstadoProduccionEnProceso,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.OrdenesProduccion.Create(op); err != nil {
			return err
		}
		if err := r.Pedidos.UpdateEstado(pedidoID, entity.EstadoPedidoEnProceso); err != nil {
			return err
		}
		for _, id := range orden {
			req := porMateria[id]
			// El almacenamiento queda en gramos; los kg son solo presentación.
			kg := req.cantidad.Div(mil)
			obs := fmt.Sprintf("Producción pedido #%d: %s kg de %s", pedidoID, kg.StringFixed(2), req.nombre)
			if _, err := inventory.AplicarMovimientoEnTx(r.StockMateriaPrima, r.MovMateriaPrima, inventory.MovimientoInput{
				TipoItem:    entity.TipoItemMateriaPrima,
				ItemID:      id,
				Tipo:        entity.MovimientoSalida,
				Cantidad:    req.cantidad,
				PedidoID:    &pedidoID,
				Observacion: obs,
				UsuarioID:   &operarioID,
				Grupo:       grupo,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// GetByID devuelve una orden de producción.
func (uc *UseCase) GetByID(id int64) (*entity.OrdenProduccion, error) {
	op, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNoEncontrado
	}
	return op, nil
}

// List lista órdenes de producción paginadas.
func (uc *UseCase) List(limit, offset int) ([]*entity.OrdenProduccion, error) {
	return uc.ordenRepo.List(limit, offset)
}

// Finalizar cierra una orden EN PROCESO: estampa la fecha fin, postea una
// entrada PRODUCCION de producto terminado por cada línea del pedido y deja
// el pedido en LISTO_PARA_ENTREGA. Todo en una transacción.
func (uc *UseCase) Finalizar(ctx context.Context, ordenID, usuarioID int64) (*entity.OrdenProduccion, error) {
	op, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNoEncontrado
	}
	if op.Estado != entity.EstadoProduccionEnProceso {
		return nil, fmt.Errorf("orden de producción #%d ya está %s: %w",
			ordenID, op.Estado, domain.ErrTransicionInvalida)
	}
	pedido, err := uc.pedidoRepo.GetByID(op.PedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNoEncontrado
	}

	fin := time.Now()
	grupo := uuid.New().String()
	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.OrdenesProduccion.Finalizar(ordenID, fin); err != nil {
			return err
		}
		if err := r.Pedidos.UpdateEstado(op.PedidoID, entity.EstadoPedidoListoParaEntrega); err != nil {
			return err
		}
		for _, det := range pedido.Detalles {
			obs := fmt.Sprintf("Producción finalizada, orden #%d", ordenID)
			if _, err := inventory.AplicarMovimientoEnTx(r.StockProducto, r.MovProducto, inventory.MovimientoInput{
				TipoItem:    entity.TipoItemProducto,
				ItemID:      det.ProductoID,
				Tipo:        entity.MovimientoProduccion,
				Cantidad:    det.Cantidad,
				PedidoID:    &op.PedidoID,
				Observacion: obs,
				UsuarioID:   &usuarioID,
				Grupo:       grupo,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	op.Estado = entity.EstadoProduccionFinalizada
	op.FechaFin = &fin
	return op, nil
}
