package dto

import "github.com/shopspring/decimal"

// CuotaFilter is bound from query string of GET /v1/cuotas.
type CuotaFilter struct {
	Page     int    `form:"page,default=1"       validate:"min=1"`
	PageSize int    `form:"page_size,default=10" validate:"min=1,max=1000"`
	Q        string `form:"q"`
	Desde    string `form:"desde"` // YYYY-MM-DD, inclusive
	Hasta    string `form:"hasta"` // YYYY-MM-DD, inclusive
	VentaID  int    `form:"id_venta"`
}

type CuotaResponse struct {
	ID              int     `json:"id_cuota"`
	VentaID         int     `json:"id_venta"`
	NumeroCuota     int     `json:"numero_cuota"`
	FechaVencID     int     `json:"id_fecha_venc"`
	FechaVencISO    *string `json:"fecha_venc_iso"`
	MontoProgramado string  `json:"monto_programado"`
}

// AsignarPagoRequest records a payment through an installment. FechaISO
// defaults to today and must exist in the date dimension.
type AsignarPagoRequest struct {
	MontoPago decimal.Decimal `json:"monto_pago"`
	FechaISO  *string         `json:"fecha_iso"`
}

type PagoResponse struct {
	Detail    string `json:"detail"`
	ID        int    `json:"id_pago"`
	VentaID   int    `json:"id_venta"`
	FechaID   int    `json:"id_fecha"`
	MontoPago string `json:"monto_pago"`
}

type GenerarCuotasResponse struct {
	VentaID   int `json:"id_venta"`
	Generadas int `json:"generadas"`
}

// PagoItemResponse is one row of GET /v1/ventas/:id/pagos.
type PagoItemResponse struct {
	ID              int     `json:"id_pago"`
	VentaID         int     `json:"id_venta"`
	FechaID         int     `json:"id_fecha"`
	Fecha           *string `json:"fecha"`
	MontoPago       string  `json:"monto_pago"`
	UsuarioCreacion *string `json:"usuario_creacion"`
}
