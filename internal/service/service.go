package service

import (
	"context"
	"errors"
	"time"

	"multilazos/internal/apierror"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// noEncontrado maps a missing row to a not-found error carrying msg.
func noEncontrado(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NoEncontrado(msg)
	}
	return err
}

// referenciaInvalida maps a missing row referenced from the request body to a
// not-found error answered as a bad request.
func referenciaInvalida(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ReferenciaInvalida(msg)
	}
	return err
}

// dinero renders an amount with exactly two decimals.
func dinero(d decimal.Decimal) string { return d.StringFixed(2) }

func fechaHora(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// parseFecha reads an optional YYYY-MM-DD filter value.
func parseFecha(campo, valor string) (*time.Time, error) {
	if valor == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, valor)
	if err != nil {
		return nil, apierror.Validacionf("%s debe tener formato YYYY-MM-DD.", campo)
	}
	return &t, nil
}

// paginar slices an in-memory result set.
func paginar[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// enUso maps a foreign-key violation on delete to an integrity error.
func enUso(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apierror.Integridad("No se puede eliminar: tiene registros asociados.", err)
	}
	return err
}

// dosDecimales rejects values with more than two decimal places instead of
// rounding them away.
func dosDecimales(campo string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return apierror.Validacionf("%s admite 2 decimales.", campo)
	}
	return nil
}

// montoNoNegativo rounds an amount to cents and rejects negative values.
func montoNoNegativo(campo string, d decimal.Decimal) (decimal.Decimal, error) {
	m := d.Round(2)
	if m.IsNegative() {
		return decimal.Zero, apierror.Validacionf("%s debe ser >= 0.", campo)
	}
	return m, nil
}
