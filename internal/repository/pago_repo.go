package repository

import (
	"context"

	"multilazos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PagoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error
	ListByVenta(ctx context.Context, ventaID int) ([]model.Pago, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pago) error {
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *pagoRepo) ListByVenta(ctx context.Context, ventaID int) ([]model.Pago, error) {
	var list []model.Pago
	err := r.db.WithContext(ctx).Preload("Fecha").
		Where("id_venta = ?", ventaID).
		Order("id_pago").
		Find(&list).Error
	return list, err
}
