package model

import "time"

// DimFecha is the pre-populated date dimension. The ETL owns it; this
// application only reads it.
type DimFecha struct {
	ID    int       `gorm:"column:id_fecha;primaryKey;autoIncrement:false"`
	Fecha time.Time `gorm:"column:fecha;type:date;not null;uniqueIndex"`
}

func (DimFecha) TableName() string { return "dim_fecha" }

// SoloFecha truncates t to its calendar date at UTC midnight, the form in which
// dates are stored in and looked up from the dimension.
func SoloFecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISO returns the date as YYYY-MM-DD.
func (d DimFecha) ISO() string { return d.Fecha.Format(time.DateOnly) }
