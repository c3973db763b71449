package model

import (
	"github.com/shopspring/decimal"
)

// Producto is a sellable item. Its current PrecioUnitario and CostoUnitario are
// copied into each line item at insertion time.
type Producto struct {
	ID             int             `gorm:"column:id_producto;primaryKey;autoIncrement"`
	Nombre         string          `gorm:"column:nombre_producto;type:varchar(150);not null;index"`
	PrecioUnitario decimal.Decimal `gorm:"column:precio_unitario;type:decimal(12,2);not null"`
	CostoUnitario  decimal.Decimal `gorm:"column:costo_unitario;type:decimal(12,2);not null"`
	CategoriaID    *int            `gorm:"column:id_categoria;index"`
	Auditoria      `gorm:"embedded"`

	Categoria *CategoriaProducto `gorm:"foreignKey:CategoriaID;references:ID"`
}

func (Producto) TableName() string { return "productos" }
