package service

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// CuotaPlan is one installment of a schedule before its due date is resolved
// to a date-key.
type CuotaPlan struct {
	Numero      int
	Vencimiento time.Time
	Monto       decimal.Decimal
}

// SumarMeses advances base by n calendar months. When the day does not exist
// in the target month it is clamped to that month's last day
// (Jan 31 + 1 → Feb 28/29).
func SumarMeses(base time.Time, n int) time.Time {
	primero := time.Date(base.Year(), base.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ultimo := now.With(primero).EndOfMonth().Day()
	return time.Date(primero.Year(), primero.Month(), min(base.Day(), ultimo), 0, 0, 0, 0, time.UTC)
}

// GenerarCronograma splits total into plazo monthly installments of
// round(total/plazo, 2), the first due one month after fechaBase. It returns
// nil when plazo or total is not positive.
func GenerarCronograma(fechaBase time.Time, plazo int, total decimal.Decimal) []CuotaPlan {
	if plazo <= 0 || !total.IsPositive() {
		return nil
	}
	monto := total.Div(decimal.NewFromInt(int64(plazo))).Round(2)
	plan := make([]CuotaPlan, 0, plazo)
	for n := 1; n <= plazo; n++ {
		plan = append(plan, CuotaPlan{
			Numero:      n,
			Vencimiento: SumarMeses(fechaBase, n),
			Monto:       monto,
		})
	}
	return plan
}
