package repository

import (
	"context"

	"multilazos/internal/dto"
	"multilazos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, id int) (*model.Gasto, error)
	List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error)
	Update(ctx context.Context, g *model.Gasto) error
	Delete(ctx context.Context, id int) error
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id int) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).Preload("CategoriaGasto").Preload("Fecha").
		Where("id_gasto = ?", id).Take(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gastoRepo) List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, int64, error) {
	var list []model.Gasto
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if filter.Search != "" {
		q = q.Where("LOWER(nombre_gasto) LIKE ?", likePattern(filter.Search))
	}
	if filter.CategoriaGastoID > 0 {
		q = q.Where("id_categoria_gastos = ?", filter.CategoriaGastoID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("CategoriaGasto").Preload("Fecha").
		Order("id_gasto DESC").
		Offset(filter.Offset()).Limit(filter.PageSize).
		Find(&list).Error
	return list, total, err
}

func (r *gastoRepo) Update(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error
}

func (r *gastoRepo) Delete(ctx context.Context, id int) error {
	return notFoundIfNone(r.db.WithContext(ctx).Where("id_gasto = ?", id).Delete(&model.Gasto{}))
}
