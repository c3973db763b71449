package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// TipoTransaccionContado is the fixed id of the cash transaction type.
// Every other id is treated as credit.
const TipoTransaccionContado = 1

// PlazosValidos lists the accepted credit terms in months.
var PlazosValidos = []int{3, 6, 9, 12, 24, 36, 48}

// PlazoValido reports whether meses is an accepted credit term.
func PlazoValido(meses int) bool { return slices.Contains(PlazosValidos, meses) }

// Venta is the sale header. TotalVentaFinal is derived from the line items and
// the interest rate; only the recalculation path writes it.
type Venta struct {
	ID                int             `gorm:"column:id_venta;primaryKey;autoIncrement"`
	ClienteID         int             `gorm:"column:id_cliente;not null;index"`
	TipoTransaccionID int             `gorm:"column:id_tipo_transaccion;not null"`
	FechaID           int             `gorm:"column:id_fecha;not null;index"`
	PlazoMes          int             `gorm:"column:plazo_mes;not null;default:0"`
	Interes           decimal.Decimal `gorm:"column:interes;type:decimal(5,2);not null;default:0"`
	TotalVentaFinal   decimal.Decimal `gorm:"column:total_venta_final;type:decimal(12,2);not null;default:0"`
	Auditoria         `gorm:"embedded"`

	Cliente         *Cliente         `gorm:"foreignKey:ClienteID;references:ID"`
	TipoTransaccion *TipoTransaccion `gorm:"foreignKey:TipoTransaccionID;references:ID"`
	Fecha           *DimFecha        `gorm:"foreignKey:FechaID;references:ID"`
}

func (Venta) TableName() string { return "ventas" }

// EsCredito reports whether the sale carries an installment plan.
func (v Venta) EsCredito() bool { return v.TipoTransaccionID != TipoTransaccionContado }

// DetalleVenta is a sale line item. Prices are copied from the product when the
// item is inserted; Subtotal = round(Cantidad × PrecioUnitario, 2) and the store
// enforces the same expression with a CHECK constraint.
// A product appears at most once per sale (uq_detalle_venta_producto).
type DetalleVenta struct {
	ID                 int             `gorm:"column:id_detalle_venta;primaryKey;autoIncrement"`
	VentaID            int             `gorm:"column:id_venta;not null;uniqueIndex:uq_detalle_venta_producto,priority:1"`
	ProductoID         int             `gorm:"column:id_producto;not null;uniqueIndex:uq_detalle_venta_producto,priority:2"`
	Cantidad           decimal.Decimal `gorm:"column:cantidad;type:decimal(12,2);not null"`
	PrecioUnitario     decimal.Decimal `gorm:"column:precio_unitario;type:decimal(12,2);not null"`
	CostoUnitarioVenta decimal.Decimal `gorm:"column:costo_unitario_venta;type:decimal(12,2);not null"`
	Subtotal           decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2);not null"`
	Auditoria          `gorm:"embedded"`

	Producto *Producto `gorm:"foreignKey:ProductoID;references:ID"`
}

func (DetalleVenta) TableName() string { return "detalle_ventas" }

// CuotaCredito is one scheduled installment of a credit sale.
type CuotaCredito struct {
	ID              int             `gorm:"column:id_cuota;primaryKey;autoIncrement"`
	VentaID         int             `gorm:"column:id_venta;not null;uniqueIndex:uq_cuota_venta_numero,priority:1"`
	NumeroCuota     int             `gorm:"column:numero_cuota;not null;uniqueIndex:uq_cuota_venta_numero,priority:2"`
	FechaVencID     int             `gorm:"column:id_fecha_venc;not null"`
	MontoProgramado decimal.Decimal `gorm:"column:monto_programado;type:decimal(12,2);not null"`

	FechaVenc *DimFecha `gorm:"foreignKey:FechaVencID;references:ID"`
}

func (CuotaCredito) TableName() string { return "cuotas_credito" }

// Pago is an append-only payment against a sale. It is not linked to a
// specific installment.
type Pago struct {
	ID        int             `gorm:"column:id_pago;primaryKey;autoIncrement"`
	VentaID   int             `gorm:"column:id_venta;not null;index"`
	FechaID   int             `gorm:"column:id_fecha;not null"`
	MontoPago decimal.Decimal `gorm:"column:monto_pago;type:decimal(12,2);not null"`
	Auditoria `gorm:"embedded"`

	Fecha *DimFecha `gorm:"foreignKey:FechaID;references:ID"`
}

func (Pago) TableName() string { return "pagos" }
