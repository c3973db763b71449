package model

import (
	"time"

	"gorm.io/datatypes"
)

// Operaciones recorded in the sales audit trail.
const (
	OperacionInsert = "INSERT"
	OperacionUpdate = "UPDATE"
	OperacionDelete = "DELETE"
)

// BitacoraVenta is an immutable audit entry for a sale header change.
// DatosAnteriores is empty on INSERT, DatosNuevos is empty on DELETE.
type BitacoraVenta struct {
	ID              int            `gorm:"column:id_bitacora;primaryKey;autoIncrement"`
	VentaID         int            `gorm:"column:id_venta;not null;index"`
	Operacion       string         `gorm:"column:operacion;type:varchar(10);not null"`
	DatosAnteriores datatypes.JSON `gorm:"column:datos_anteriores"`
	DatosNuevos     datatypes.JSON `gorm:"column:datos_nuevos"`
	UsuarioEvento   string         `gorm:"column:usuario_evento;type:varchar(150);not null"`
	FechaEvento     time.Time      `gorm:"column:fecha_evento;not null;index"`
}

func (BitacoraVenta) TableName() string { return "bitacora_ventas" }
