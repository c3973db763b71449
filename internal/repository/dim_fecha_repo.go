package repository

import (
	"context"
	"time"

	"multilazos/internal/model"

	"gorm.io/gorm"
)

// DimFechaRepository resolves calendar dates to date-keys and back.
// Lookups are exact-match and never create rows; absence is reported as
// gorm.ErrRecordNotFound.
type DimFechaRepository interface {
	FindIDByFecha(ctx context.Context, fecha time.Time) (int, error)
	FindFechaByID(ctx context.Context, id int) (time.Time, error)
}

type dimFechaRepo struct{ db *gorm.DB }

func NewDimFechaRepository(db *gorm.DB) DimFechaRepository { return &dimFechaRepo{db: db} }

func (r *dimFechaRepo) FindIDByFecha(ctx context.Context, fecha time.Time) (int, error) {
	var d model.DimFecha
	err := r.db.WithContext(ctx).Where("fecha = ?", model.SoloFecha(fecha)).Take(&d).Error
	return d.ID, err
}

func (r *dimFechaRepo) FindFechaByID(ctx context.Context, id int) (time.Time, error) {
	var d model.DimFecha
	if err := r.db.WithContext(ctx).Where("id_fecha = ?", id).Take(&d).Error; err != nil {
		return time.Time{}, err
	}
	return model.SoloFecha(d.Fecha), nil
}
