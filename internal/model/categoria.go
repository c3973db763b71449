package model

import "github.com/shopspring/decimal"

// Catalogo is implemented by the lookup tables that share the
// "integer id + unique name" shape.
type Catalogo interface {
	GetID() int
	SetID(id int)
	GetNombre() string
	SetNombre(nombre string)
}

// TipoCliente carries the default interest rate copied into credit sales.
// TasaInteresDefault may be stored as a fraction (0.15) or a percent (15).
type TipoCliente struct {
	ID                 int             `gorm:"column:id_tipo_cliente;primaryKey;autoIncrement"                      json:"id_tipo_cliente"`
	Nombre             string          `gorm:"column:nombre_tipo_cliente;type:varchar(100);not null;uniqueIndex" json:"nombre_tipo_cliente"`
	TasaInteresDefault decimal.Decimal `gorm:"column:tasa_interes_default;type:decimal(5,2);not null;default:0"    json:"tasa_interes_default"`
}

func (TipoCliente) TableName() string { return "tipo_clientes" }
func (t *TipoCliente) GetID() int { return t.ID }
func (t *TipoCliente) SetID(id int) { t.ID = id }
func (t *TipoCliente) GetNombre() string { return t.Nombre }
func (t *TipoCliente) SetNombre(nombre string) { t.Nombre = nombre }

// TasaPorcentual returns the default rate expressed as a percentage.
// Rates at or below 1 are read as fractions.
func (t TipoCliente) TasaPorcentual() decimal.Decimal {
	if t.TasaInteresDefault.LessThanOrEqual(decimal.NewFromInt(1)) {
		return t.TasaInteresDefault.Mul(decimal.NewFromInt(100))
	}
	return t.TasaInteresDefault
}

// CategoriaProducto classifies products.
type CategoriaProducto struct {
	ID     int    `gorm:"column:id_categoria;primaryKey;autoIncrement"                       json:"id_categoria"`
	Nombre string `gorm:"column:nombre_categoria;type:varchar(100);not null;uniqueIndex" json:"nombre_categoria"`
}

func (CategoriaProducto) TableName() string { return "categoria_productos" }
func (c *CategoriaProducto) GetID() int { return c.ID }
func (c *CategoriaProducto) SetID(id int) { c.ID = id }
func (c *CategoriaProducto) GetNombre() string { return c.Nombre }
func (c *CategoriaProducto) SetNombre(nombre string) { c.Nombre = nombre }

// CategoriaGasto classifies expenses.
type CategoriaGasto struct {
	ID     int    `gorm:"column:id_categoria_gastos;primaryKey;autoIncrement"                json:"id_categoria_gastos"`
	Nombre string `gorm:"column:nombre_categoria;type:varchar(100);not null;uniqueIndex" json:"nombre_categoria"`
}

func (CategoriaGasto) TableName() string { return "categoria_gastos" }
func (c *CategoriaGasto) GetID() int { return c.ID }
func (c *CategoriaGasto) SetID(id int) { c.ID = id }
func (c *CategoriaGasto) GetNombre() string { return c.Nombre }
func (c *CategoriaGasto) SetNombre(nombre string) { c.Nombre = nombre }

// TipoTransaccion distinguishes cash (id 1) from credit sales.
type TipoTransaccion struct {
	ID     int    `gorm:"column:id_tipo_transaccion;primaryKey;autoIncrement"                      json:"id_tipo_transaccion"`
	Nombre string `gorm:"column:nombre_tipo_transaccion;type:varchar(100);not null;uniqueIndex" json:"nombre_tipo_transaccion"`
}

func (TipoTransaccion) TableName() string { return "tipo_transacciones" }
func (t *TipoTransaccion) GetID() int { return t.ID }
func (t *TipoTransaccion) SetID(id int) { t.ID = id }
func (t *TipoTransaccion) GetNombre() string { return t.Nombre }
func (t *TipoTransaccion) SetNombre(nombre string) { t.Nombre = nombre }
