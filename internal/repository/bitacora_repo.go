package repository

import (
	"context"
	"time"

	"multilazos/internal/model"

	"gorm.io/gorm"
)

// BitacoraQuery narrows the audit-trail listing. Desde/Hasta are inclusive
// calendar days.
type BitacoraQuery struct {
	Q         string
	Operacion string
	VentaID   int
	Desde     *time.Time
	Hasta     *time.Time
	Offset    int
	Limit     int
}

type BitacoraRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.BitacoraVenta) error
	List(ctx context.Context, q BitacoraQuery) ([]model.BitacoraVenta, int64, error)
}

type bitacoraRepo struct{ db *gorm.DB }

func NewBitacoraRepository(db *gorm.DB) BitacoraRepository { return &bitacoraRepo{db: db} }

func (r *bitacoraRepo) Create(ctx context.Context, tx *gorm.DB, b *model.BitacoraVenta) error {
	return conn(r.db, tx).WithContext(ctx).Create(b).Error
}

func (r *bitacoraRepo) List(ctx context.Context, q BitacoraQuery) ([]model.BitacoraVenta, int64, error) {
	var list []model.BitacoraVenta
	var total int64

	db := r.db.WithContext(ctx).Model(&model.BitacoraVenta{})
	if q.Q != "" {
		like := likePattern(q.Q)
		db = db.Where("LOWER(usuario_evento) LIKE ? OR LOWER(operacion) LIKE ? OR CAST(id_venta AS VARCHAR(20)) LIKE ?",
			like, like, like)
	}
	if q.Operacion != "" {
		db = db.Where("operacion = ?", q.Operacion)
	}
	if q.VentaID > 0 {
		db = db.Where("id_venta = ?", q.VentaID)
	}
	if q.Desde != nil {
		db = db.Where("fecha_evento >= ?", model.SoloFecha(*q.Desde))
	}
	if q.Hasta != nil {
		db = db.Where("fecha_evento < ?", model.SoloFecha(*q.Hasta).AddDate(0, 0, 1))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("fecha_evento DESC, id_bitacora DESC").
		Offset(q.Offset).Limit(q.Limit).
		Find(&list).Error
	return list, total, err
}
