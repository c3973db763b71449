package dto

import "github.com/shopspring/decimal"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type GuardarClienteRequest struct {
	Nombre        string `json:"nombre_cliente"   validate:"required,max=100"`
	Apellido      string `json:"apellido_cliente" validate:"required,max=100"`
	TipoClienteID int    `json:"id_tipo_cliente"  validate:"required,min=1"`
}

type GuardarProductoRequest struct {
	Nombre         string          `json:"nombre_producto" validate:"required,max=150"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"  validate:"min=0"`
	CategoriaID    *int            `json:"id_categoria"    validate:"omitempty,min=1"`
}

type GuardarGastoRequest struct {
	Nombre           string          `json:"nombre_gasto"        validate:"required,max=150"`
	Monto            decimal.Decimal `json:"monto_gasto"         validate:"min=0"`
	FechaID          int             `json:"id_fecha"            validate:"required,min=1"`
	CategoriaGastoID int             `json:"id_categoria_gastos" validate:"required,min=1"`
}

// ── Filters ───────────────────────────────────────────────────────────────────

type ClienteFilter struct {
	PaginaFiltro
	TipoClienteID int `form:"id_tipo_cliente"`
}

type ProductoFilter struct {
	PaginaFiltro
	CategoriaID int `form:"id_categoria"`
}

type GastoFilter struct {
	PaginaFiltro
	CategoriaGastoID int `form:"id_categoria_gastos"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID                int     `json:"id_cliente"`
	Nombre            string  `json:"nombre_cliente"`
	Apellido          string  `json:"apellido_cliente"`
	TipoClienteID     int     `json:"id_tipo_cliente"`
	NombreTipoCliente *string `json:"nombre_tipo_cliente"`
}

type ProductoResponse struct {
	ID                int     `json:"id_producto"`
	Nombre            string  `json:"nombre_producto"`
	PrecioUnitario    string  `json:"precio_unitario"`
	CostoUnitario     string  `json:"costo_unitario"`
	CategoriaID       *int    `json:"id_categoria"`
	NombreCategoria   *string `json:"nombre_categoria"`
	FechaCreacion     *string `json:"fecha_creacion"`
	FechaModificacion *string `json:"fecha_modificacion"`
}

type GastoResponse struct {
	ID                   int     `json:"id_gasto"`
	Nombre               string  `json:"nombre_gasto"`
	Monto                string  `json:"monto_gasto"`
	FechaID              int     `json:"id_fecha"`
	Fecha                *string `json:"fecha"`
	CategoriaGastoID     int     `json:"id_categoria_gastos"`
	NombreCategoriaGasto *string `json:"nombre_categoria_gasto"`
	FechaCreacion        *string `json:"fecha_creacion"`
	FechaModificacion    *string `json:"fecha_modificacion"`
}

type DimFechaResponse struct {
	ID    int    `json:"id_fecha"`
	Fecha string `json:"fecha"`
}

// GuardarCatalogoRequest creates or renames a lookup row. TasaInteresDefault
// only applies to tipos de cliente.
type GuardarCatalogoRequest struct {
	Nombre             string           `json:"nombre"               validate:"required"`
	TasaInteresDefault *decimal.Decimal `json:"tasa_interes_default"`
}
