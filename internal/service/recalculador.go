package service

import (
	"context"
	"time"

	"multilazos/internal/metrics"
	"multilazos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var cien = decimal.NewFromInt(100)

// TotalConInteres returns round(subtotal × (1 + interes/100), 2). Rounding is
// half away from zero, as PostgreSQL rounds NUMERIC.
func TotalConInteres(subtotal, interes decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(cien.Add(interes)).Div(cien).Round(2)
}

// Recalculador re-derives a sale's total from its persisted line items. It is
// the only writer of ventas.total_venta_final.
type Recalculador struct {
	ventas   repository.VentaRepository
	detalles repository.DetalleVentaRepository
}

func NewRecalculador(ventas repository.VentaRepository, detalles repository.DetalleVentaRepository) *Recalculador {
	return &Recalculador{ventas: ventas, detalles: detalles}
}

// RecalcularTotal sums the item subtotals of ventaID, applies the sale's
// interest and writes total and modification time in one UPDATE. It never
// adjusts incrementally.
func (r *Recalculador) RecalcularTotal(ctx context.Context, tx *gorm.DB, ventaID int) (decimal.Decimal, error) {
	v, err := r.ventas.FindByID(ctx, tx, ventaID)
	if err != nil {
		return decimal.Zero, noEncontrado(err, "Venta no encontrada")
	}
	subtotal, err := r.detalles.SumSubtotal(ctx, tx, ventaID)
	if err != nil {
		return decimal.Zero, err
	}
	total := TotalConInteres(subtotal, v.Interes)
	if err := r.ventas.UpdateTotal(ctx, tx, ventaID, total, time.Now()); err != nil {
		return decimal.Zero, err
	}
	metrics.Recalculos.Inc()
	return total, nil
}
