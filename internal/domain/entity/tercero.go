package entity

import "time"

// Cliente destinatario de pedidos.
type Cliente struct {
	ID        int64
	Nombre    string
	Documento string // NIT o cédula
	Direccion string
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Proveedor origen de cotizaciones y órdenes de compra.
type Proveedor struct {
	ID        int64
	Nombre    string
	Documento string
	Direccion string
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
