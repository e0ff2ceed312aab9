package entity

import "time"

// Auditoria registro del log de auditoría. Se escribe después de cada
// mutación exitosa; un fallo al escribirlo nunca revierte la operación.
type Auditoria struct {
	ID            int64
	Entidad       string
	RegistroID    int64
	Accion        string // "CREAR" | "ACTUALIZAR" | "ELIMINAR" | "CAMBIO_ESTADO" | "AJUSTE_STOCK"
	ValorAnterior string
	ValorNuevo    string
	UsuarioID     int64
	Fecha         time.Time
}
