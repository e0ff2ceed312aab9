package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formula describe cómo producir un producto: las materias primas que
// consume un lote y cuántos gramos de producto rinde ese lote.
type Formula struct {
	ID          int64
	ProductoID  int64
	Nombre      string
	Rendimiento decimal.Decimal // gramos producidos por lote
	Detalles    []DetalleFormula
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// DetalleFormula materia prima consumida por lote, en gramos.
type DetalleFormula struct {
	ID             int64
	FormulaID      int64
	MateriaPrimaID int64
	CantidadPorLote decimal.Decimal // gramos por lote
}
