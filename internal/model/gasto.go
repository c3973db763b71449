package model

import "github.com/shopspring/decimal"

// Gasto is a business expense dated through the date dimension.
type Gasto struct {
	ID               int             `gorm:"column:id_gasto;primaryKey;autoIncrement"`
	Nombre           string          `gorm:"column:nombre_gasto;type:varchar(150);not null"`
	Monto            decimal.Decimal `gorm:"column:monto_gasto;type:decimal(12,2);not null"`
	FechaID          int             `gorm:"column:id_fecha;not null;index"`
	CategoriaGastoID int             `gorm:"column:id_categoria_gastos;not null;index"`
	Auditoria        `gorm:"embedded"`

	CategoriaGasto *CategoriaGasto `gorm:"foreignKey:CategoriaGastoID;references:ID"`
	Fecha          *DimFecha       `gorm:"foreignKey:FechaID;references:ID"`
}

func (Gasto) TableName() string { return "gastos" }
