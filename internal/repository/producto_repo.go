package repository

import (
	"context"

	"multilazos/internal/dto"
	"multilazos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, tx *gorm.DB, id int) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id int) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, tx *gorm.DB, id int) (*model.Producto, error) {
	var p model.Producto
	err := conn(r.db, tx).WithContext(ctx).Preload("Categoria").
		Where("id_producto = ?", id).Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var list []model.Producto
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Search != "" {
		q = q.Where("LOWER(nombre_producto) LIKE ?", likePattern(filter.Search))
	}
	if filter.CategoriaID > 0 {
		q = q.Where("id_categoria = ?", filter.CategoriaID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Categoria").
		Order("nombre_producto asc").
		Offset(filter.Offset()).Limit(filter.PageSize).
		Find(&list).Error
	return list, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id int) error {
	return notFoundIfNone(r.db.WithContext(ctx).Where("id_producto = ?", id).Delete(&model.Producto{}))
}
