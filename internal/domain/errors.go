package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado       = errors.New("recurso no encontrado")
	ErrEntradaInvalida    = errors.New("entrada inválida")
	ErrDuplicado          = errors.New("recurso duplicado")
	ErrNoAutorizado       = errors.New("no autorizado")
	ErrProhibido          = errors.New("acceso denegado")
	ErrStockInsuficiente  = errors.New("stock insuficiente")
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
	ErrSinFormula         = errors.New("el producto no tiene fórmula de producción")
	ErrYaExiste           = errors.New("ya existe una orden de producción para este pedido")
	ErrEmailYaRegistrado  = errors.New("el email ya está registrado")
)

// StockInsuficienteError detalla un faltante de stock: qué ítem, cuánto hay y cuánto se requiere.
// Envuelve ErrStockInsuficiente para que errors.Is siga funcionando en los handlers.
type StockInsuficienteError struct {
	Item       string // nombre del producto o materia prima
	Disponible decimal.Decimal
	Requerido  decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	deficit := e.Requerido.Sub(e.Disponible)
	return fmt.Sprintf("stock insuficiente de %q: disponible %s, requerido %s (faltan %s)",
		e.Item, e.Disponible.String(), e.Requerido.String(), deficit.String())
}

func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }

// Deficit devuelve la cantidad faltante.
func (e *StockInsuficienteError) Deficit() decimal.Decimal {
	return e.Requerido.Sub(e.Disponible)
}

// TransicionInvalidaError indica un cambio de estado fuera de la tabla de transiciones,
// nombrando los estados destino permitidos para el estado actual.
type TransicionInvalidaError struct {
	EstadoActual     string
	EstadoSolicitado string
	Permitidos       []string
}

func (e *TransicionInvalidaError) Error() string {
	if len(e.Permitidos) == 0 {
		return fmt.Sprintf("transición inválida: %s no permite ningún cambio de estado (solicitado %s)",
			e.EstadoActual, e.EstadoSolicitado)
	}
	return fmt.Sprintf("transición inválida: de %s solo se permite pasar a [%s] (solicitado %s)",
		e.EstadoActual, strings.Join(e.Permitidos, ", "), e.EstadoSolicitado)
}

func (e *TransicionInvalidaError) Unwrap() error { return ErrTransicionInvalida }
