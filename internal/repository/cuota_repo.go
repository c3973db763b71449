package repository

import (
	"context"
	"time"

	"multilazos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CuotaQuery narrows the installment listing. Zero values mean "no filter";
// Desde and Hasta are inclusive due dates.
type CuotaQuery struct {
	VentaID int
	Desde   *time.Time
	Hasta   *time.Time
}

type CuotaRepository interface {
	CountByVenta(ctx context.Context, tx *gorm.DB, ventaID int) (int64, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, cuotas []model.CuotaCredito) error
	FindByID(ctx context.Context, id int) (*model.CuotaCredito, error)
	List(ctx context.Context, q CuotaQuery) ([]model.CuotaCredito, error)
}

type cuotaRepo struct{ db *gorm.DB }

func NewCuotaRepository(db *gorm.DB) CuotaRepository { return &cuotaRepo{db: db} }

func (r *cuotaRepo) CountByVenta(ctx context.Context, tx *gorm.DB, ventaID int) (int64, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).Model(&model.CuotaCredito{}).
		Where("id_venta = ?", ventaID).Count(&n).Error
	return n, err
}

// CreateBatch inserts the whole schedule; any failure rejects every row.
func (r *cuotaRepo) CreateBatch(ctx context.Context, tx *gorm.DB, cuotas []model.CuotaCredito) error {
	if len(cuotas) == 0 {
		return nil
	}
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).CreateInBatches(cuotas, 100).Error
}

func (r *cuotaRepo) FindByID(ctx context.Context, id int) (*model.CuotaCredito, error) {
	var c model.CuotaCredito
	if err := r.db.WithContext(ctx).Where("id_cuota = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cuotaRepo) List(ctx context.Context, q CuotaQuery) ([]model.CuotaCredito, error) {
	var list []model.CuotaCredito
	db := r.db.WithContext(ctx).Model(&model.CuotaCredito{}).
		Joins("JOIN dim_fecha d ON d.id_fecha = cuotas_credito.id_fecha_venc")
	if q.VentaID > 0 {
		db = db.Where("cuotas_credito.id_venta = ?", q.VentaID)
	}
	if q.Desde != nil {
		db = db.Where("d.fecha >= ?", model.SoloFecha(*q.Desde))
	}
	if q.Hasta != nil {
		db = db.Where("d.fecha <= ?", model.SoloFecha(*q.Hasta))
	}
	err := db.Preload("FechaVenc").
		Order("cuotas_credito.id_venta, cuotas_credito.numero_cuota").
		Find(&list).Error
	return list, err
}
