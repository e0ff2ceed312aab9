package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// CrearMateriaPrimaRequest body para POST /api/materias-primas.
type CrearMateriaPrimaRequest struct {
	Nombre       string `json:"nombre" validate:"required,min=2,max=120"`
	UnidadMedida string `json:"unidad_medida" validate:"omitempty,max=20"`
}

// MateriaPrimaResponse materia prima con su stock vigente en gramos.
type MateriaPrimaResponse struct {
	ID           int64           `json:"id"`
	Nombre       string          `json:"nombre"`
	UnidadMedida string          `json:"unidad_medida"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MateriaPrimaFromEntity convierte la entidad a respuesta.
func MateriaPrimaFromEntity(mp *entity.MateriaPrima) MateriaPrimaResponse {
	return MateriaPrimaResponse{
		ID:           mp.ID,
		Nombre:       mp.Nombre,
		UnidadMedida: mp.UnidadMedida,
		StockActual:  mp.StockActual,
		CreatedAt:    mp.CreatedAt,
		UpdatedAt:    mp.UpdatedAt,
	}
}

// CrearProductoRequest body para POST /api/productos.
type CrearProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,min=2,max=120"`
	Descripcion string          `json:"descripcion" validate:"omitempty,max=500"`
	PesoUnidad  decimal.Decimal `json:"peso_unidad"` // gramos por unidad
	Precio      decimal.Decimal `json:"precio"`
}

// ProductoResponse producto terminado con su stock en unidades.
type ProductoResponse struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	PesoUnidad  decimal.Decimal `json:"peso_unidad"`
	Precio      decimal.Decimal `json:"precio"`
	StockActual decimal.Decimal `json:"stock_actual"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductoFromEntity convierte la entidad a respuesta.
func ProductoFromEntity(p *entity.Producto) ProductoResponse {
	return ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		PesoUnidad:  p.PesoUnidad,
		Precio:      p.Precio,
		StockActual: p.StockActual,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// TerceroRequest body para crear o actualizar clientes y proveedores.
type TerceroRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=120"`
	Documento string `json:"documento" validate:"omitempty,max=30"`
	Direccion string `json:"direccion" validate:"omitempty,max=200"`
	Telefono  string `json:"telefono" validate:"omitempty,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// TerceroResponse cliente o proveedor.
type TerceroResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Documento string    `json:"documento,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClienteFromEntity convierte la entidad a respuesta.
func ClienteFromEntity(c *entity.Cliente) TerceroResponse {
	return TerceroResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ProveedorFromEntity convierte la entidad a respuesta.
func ProveedorFromEntity(p *entity.Proveedor) TerceroResponse {
	return TerceroResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Documento: p.Documento,
		Direccion: p.Direccion,
		Telefono:  p.Telefono,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// DetalleFormulaRequest línea de fórmula: gramos de materia prima por lote.
type DetalleFormulaRequest struct {
	MateriaPrimaID  int64           `json:"materia_prima_id" validate:"required,gt=0"`
	CantidadPorLote decimal.Decimal `json:"cantidad_por_lote"`
}

// CrearFormulaRequest body para POST /api/formulas.
type CrearFormulaRequest struct {
	ProductoID  int64                   `json:"producto_id" validate:"required,gt=0"`
	Nombre      string                  `json:"nombre" validate:"omitempty,max=120"`
	Rendimiento decimal.Decimal         `json:"rendimiento"` // gramos por lote
	Detalles    []DetalleFormulaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleFormulaResponse línea de fórmula.
type DetalleFormulaResponse struct {
	MateriaPrimaID  int64           `json:"materia_prima_id"`
	CantidadPorLote decimal.Decimal `json:"cantidad_por_lote"`
}

// FormulaResponse fórmula con sus líneas.
type FormulaResponse struct {
	ID          int64                    `json:"id"`
	ProductoID  int64                    `json:"producto_id"`
	Nombre      string                   `json:"nombre,omitempty"`
	Rendimiento decimal.Decimal          `json:"rendimiento"`
	Detalles    []DetalleFormulaResponse `json:"detalles"`
	CreatedAt   time.Time                `json:"created_at"`
}

// FormulaFromEntity convierte la entidad a respuesta.
func FormulaFromEntity(f *entity.Formula) FormulaResponse {
	out := FormulaResponse{
		ID:          f.ID,
		ProductoID:  f.ProductoID,
		Nombre:      f.Nombre,
		Rendimiento: f.Rendimiento,
		CreatedAt:   f.CreatedAt,
	}
	for _, d := range f.Detalles {
		out.Detalles = append(out.Detalles, DetalleFormulaResponse{
			MateriaPrimaID:  d.MateriaPrimaID,
			CantidadPorLote: d.CantidadPorLote,
		})
	}
	return out
}
