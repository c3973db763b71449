package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Page              int    `form:"page,default=1"       validate:"min=1"`
	PageSize          int    `form:"page_size,default=10" validate:"min=1,max=1000"`
	Search            string `form:"search"` // matches client first or last name
	ClienteID         int    `form:"id_cliente"`
	TipoTransaccionID int    `form:"id_tipo_transaccion"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// GuardarVentaRequest is the sale header. PlazoMes is required for credit sales
// and ignored for cash sales; the interest rate always comes from the client type.
type GuardarVentaRequest struct {
	ClienteID         int  `json:"id_cliente"          validate:"required,min=1"`
	TipoTransaccionID int  `json:"id_tipo_transaccion" validate:"required,min=1"`
	FechaID           int  `json:"id_fecha"            validate:"required,min=1"`
	PlazoMes          *int `json:"plazo_mes"`
}

// CrearVentaRequest optionally carries line items inserted in the same unit of
// work as the header, before the installment schedule is derived.
type CrearVentaRequest struct {
	GuardarVentaRequest
	Detalles []AgregarDetalleRequest `json:"detalles" validate:"omitempty,dive"`
}

type AgregarDetalleRequest struct {
	ProductoID int             `json:"id_producto" validate:"required,min=1"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

type ActualizarDetalleRequest struct {
	Cantidad decimal.Decimal `json:"cantidad"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID                int     `json:"id_venta"`
	ClienteID         int     `json:"id_cliente"`
	Cliente           string  `json:"cliente"`
	TipoTransaccionID int     `json:"id_tipo_transaccion"`
	TipoTransaccion   *string `json:"tipo_transaccion"`
	FechaID           int     `json:"id_fecha"`
	Fecha             *string `json:"fecha"`
	PlazoMes          int     `json:"plazo_mes"`
	Interes           string  `json:"interes"`
	TotalVentaFinal   string  `json:"total_venta_final"`
}

// CrearVentaResponse reports the new sale id and how many installments were generated.
type CrearVentaResponse struct {
	ID              int    `json:"id_venta"`
	TotalVentaFinal string `json:"total_venta_final"`
	CuotasGeneradas int    `json:"cuotas_generadas"`
}

type DetalleVentaResponse struct {
	ID                 int    `json:"id_detalle_venta"`
	ProductoID         int    `json:"id_producto"`
	Producto           string `json:"producto"`
	Cantidad           string `json:"cantidad"`
	PrecioUnitario     string `json:"precio_unitario"`
	CostoUnitarioVenta string `json:"costo_unitario_venta"`
	Subtotal           string `json:"subtotal"`
}

// DetalleVentaListResponse carries the running subtotal of the sale's items,
// independent of the persisted header total.
type DetalleVentaListResponse struct {
	Count    int                    `json:"count"`
	Subtotal string                 `json:"subtotal"`
	Results  []DetalleVentaResponse `json:"results"`
}

type TotalMesResponse struct {
	Mes   string `json:"mes"` // YYYY-MM
	Total string `json:"total"`
}
