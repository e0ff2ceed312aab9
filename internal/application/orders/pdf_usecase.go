package orders

import (
	"context"
	"fmt"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// LineaRemision línea del pedido enriquecida con el nombre del producto.
type LineaRemision struct {
	entity.DetallePedido
	NombreProducto string
}

// RemisionPDFGenerator puerto hacia el generador de la remisión de entrega.
type RemisionPDFGenerator interface {
	GenerarRemisionPDF(ctx context.Context, pedido *entity.Pedido, cliente *entity.Cliente, lineas []LineaRemision) ([]byte, error)
}

// PDFUseCase genera la remisión de entrega (PDF) de un pedido. Solo se
// permite para pedidos que ya salieron de PENDIENTE: la remisión acompaña
// la mercancía, no la intención.
type PDFUseCase struct {
	pedidoRepo   repository.PedidoRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	generator    RemisionPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	generator RemisionPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		pedidoRepo:   pedidoRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		generator:    generator,
	}
}

// DescargarRemisionPDF carga el pedido con su cliente y líneas y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrNoEncontrado      si el pedido no existe.
//   - domain.ErrEntradaInvalida   si el pedido sigue en PENDIENTE o fue cancelado.
func (uc *PDFUseCase) DescargarRemisionPDF(ctx context.Context, pedidoID int64) (pdfBytes []byte, filename string, err error) {
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if pedido == nil {
		return nil, "", domain.ErrNoEncontrado
	}
	if pedido.EstadoID == entity.EstadoPedidoPendiente || pedido.EstadoID == entity.EstadoPedidoCancelado {
		return nil, "", fmt.Errorf("%w: el pedido está en estado %s, la remisión solo aplica a pedidos en curso",
			domain.ErrEntradaInvalida, entity.NombreEstadoPedido[pedido.EstadoID])
	}

	cliente, err := uc.clienteRepo.GetByID(pedido.ClienteID)
	if err != nil || cliente == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	lineas := make([]LineaRemision, 0, len(pedido.Detalles))
	for _, d := range pedido.Detalles {
		nombre := fmt.Sprintf("Producto #%d", d.ProductoID) // fallback
		if producto, pErr := uc.productoRepo.GetByID(d.ProductoID); pErr == nil && producto != nil {
			nombre = producto.Nombre
		}
		lineas = append(lineas, LineaRemision{DetallePedido: d, NombreProducto: nombre})
	}

	pdfBytes, err = uc.generator.GenerarRemisionPDF(ctx, pedido, cliente, lineas)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("remision_pedido_%d.pdf", pedido.ID)
	return pdfBytes, filename, nil
}
