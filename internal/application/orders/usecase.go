package orders

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

// transiciones tabla de transiciones permitidas de pedidos de cliente.
// Todo par (actual, solicitado) fuera de la tabla se rechaza.
var transiciones = map[int][]int{
	entity.EstadoPedidoPendiente:        {entity.EstadoPedidoCancelado},
	entity.EstadoPedidoListoParaEntrega: {entity.EstadoPedidoEnviado, entity.EstadoPedidoEntregado},
	entity.EstadoPedidoEnviado:          {entity.EstadoPedidoEntregado},
}

// TransicionPermitida consulta la tabla.
func TransicionPermitida(actual, solicitado int) bool {
	for _, destino := range transiciones[actual] {
		if destino == solicitado {
			return true
		}
	}
	return false
}

func nombresPermitidos(actual int) []string {
	destinos := transiciones[actual]
	nombres := make([]string, 0, len(destinos))
	for _, d := range destinos {
		nombres = append(nombres, entity.NombreEstadoPedido[d])
	}
	return nombres
}

// UseCase casos de uso de pedidos de cliente: CRUD y cambio de estado con
// descuento de inventario al entregar.
type UseCase struct {
	txRunner     inventory.TxRunner
	pedidoRepo   repository.PedidoRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		pedidoRepo:   pedidoRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
	}
}

// LineaPedidoInput línea de un pedido nuevo.
type LineaPedidoInput struct {
	ProductoID int64
	Cantidad   decimal.Decimal
}

// Crear registra un pedido en estado PENDIENTE con sus líneas.
// El precio unitario se toma del producto; subtotal = cantidad × precio.
func (uc *UseCase) Crear(clienteID int64, lineas []LineaPedidoInput) (*entity.Pedido, error) {
	if clienteID == 0 || len(lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	cliente, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNoEncontrado
	}

	now := time.Now()
	pedido := &entity.Pedido{
		ClienteID: clienteID,
		EstadoID:  entity.EstadoPedidoPendiente,
		Fecha:     now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	total := decimal.Zero
	for _, l := range lineas {
		if l.ProductoID == 0 || !l.Cantidad.IsPositive() {
			return nil, domain.ErrEntradaInvalida
		}
		producto, err := uc.productoRepo.GetByID(l.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNoEncontrado
		}
		subtotal := l.Cantidad.Mul(producto.Precio)
		pedido.Detalles = append(pedido.Detalles, entity.DetallePedido{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: producto.Precio,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	pedido.Total = total

	if err := uc.pedidoRepo.Create(pedido); err != nil {
		return nil, err
	}
	return pedido, nil
}

// GetByID devuelve un pedido con sus líneas, o ErrNoEncontrado.
func (uc *UseCase) GetByID(id int64) (*entity.Pedido, error) {
	pedido, err := uc.pedidoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNoEncontrado
	}
	return pedido, nil
}

// List lista pedidos paginados.
func (uc *UseCase) List(limit, offset int) ([]*entity.Pedido, error) {
	return uc.pedidoRepo.List(limit, offset)
}

// Delete borra lógicamente un pedido.
func (uc *UseCase) Delete(id int64) error {
	pedido, err := uc.pedidoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNoEncontrado
	}
	return uc.pedidoRepo.Delete(id)
}

// ResultadoCambioEstado pedido actualizado y los movimientos de salida
// generados (vacío salvo en la transición a ENTREGADO).
type ResultadoCambioEstado struct {
	Pedido      *entity.Pedido
	Movimientos []*entity.Movimiento
}

// CambiarEstado aplica una transición de la tabla. Si el destino es
// ENTREGADO, primero verifica el stock de TODAS las líneas (pre-vuelo) y
// solo después descuenta una SALIDA por línea, en la misma transacción que
// el cambio de estado. Para cualquier otro destino solo cambia el estado.
func (uc *UseCase) CambiarEstado(ctx context.Context, pedidoID int64, nuevoEstado int, usuarioID int64) (*ResultadoCambioEstado, error) {
	if _, ok := entity.NombreEstadoPedido[nuevoEstado]; !ok {
		return nil, domain.ErrEntradaInvalida
	}
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNoEncontrado
	}
	if !TransicionPermitida(pedido.EstadoID, nuevoEstado) {
		return nil, &domain.TransicionInvalidaError{
			EstadoActual:     entity.NombreEstadoPedido[pedido.EstadoID],
			EstadoSolicitado: entity.NombreEstadoPedido[nuevoEstado],
			Permitidos:       nombresPermitidos(pedido.EstadoID),
		}
	}

	// Pre-vuelo: al entregar, todas las líneas deben tener stock antes de
	// tocar nada. La verificación definitiva vuelve a correr con la fila
	// bloqueada dentro de la transacción.
	if nuevoEstado == entity.EstadoPedidoEntregado {
		for _, det := range pedido.Detalles {
			producto, err := uc.productoRepo.GetByID(det.ProductoID)
			if err != nil {
				return nil, err
			}
			if producto == nil {
				return nil, domain.ErrNoEncontrado
			}
			if producto.StockActual.LessThan(det.Cantidad) {
				return nil, &domain.StockInsuficienteError{
					Item:       producto.Nombre,
					Disponible: producto.StockActual,
					Requerido:  det.Cantidad,
				}
			}
		}
	}

	grupo := uuid.New().String()
	var movimientos []*entity.Movimiento
	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.Pedidos.UpdateEstado(pedidoID, nuevoEstado); err != nil {
			return err
		}
		if nuevoEstado != entity.EstadoPedidoEntregado {
			return nil
		}
		// Una SALIDA por línea, en el orden de las líneas del pedido.
		for _, det := range pedido.Detalles {
			det := det
			res, err := inventory.AplicarMovimientoEnTx(r.StockProducto, r.MovProducto, inventory.MovimientoInput{
				TipoItem:    entity.TipoItemProducto,
				ItemID:      det.ProductoID,
				Tipo:        entity.MovimientoSalida,
				Cantidad:    det.Cantidad,
				PedidoID:    &pedido.ID,
				Observacion: fmt.Sprintf("Entrega pedido #%d", pedido.ID),
				UsuarioID:   &usuarioID,
				Grupo:       grupo,
			})
			if err != nil {
				return err
			}
			if res.CambioRealizado {
				movimientos = append(movimientos, res.Movimiento)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pedido.EstadoID = nuevoEstado
	return &ResultadoCambioEstado{Pedido: pedido, Movimientos: movimientos}, nil
}
