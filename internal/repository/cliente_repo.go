package repository

import (
	"context"

	"multilazos/internal/dto"
	"multilazos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, tx *gorm.DB, id int) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, id int) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// FindByID preloads the client type, whose rate credit sales copy.
func (r *clienteRepo) FindByID(ctx context.Context, tx *gorm.DB, id int) (*model.Cliente, error) {
	var c model.Cliente
	err := conn(r.db, tx).WithContext(ctx).Preload("TipoCliente").
		Where("id_cliente = ?", id).Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var list []model.Cliente
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if filter.Search != "" {
		like := likePattern(filter.Search)
		q = q.Where("LOWER(nombre_cliente) LIKE ? OR LOWER(apellido_cliente) LIKE ?", like, like)
	}
	if filter.TipoClienteID > 0 {
		q = q.Where("id_tipo_cliente = ?", filter.TipoClienteID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("TipoCliente").
		Order("apellido_cliente, nombre_cliente").
		Offset(filter.Offset()).Limit(filter.PageSize).
		Find(&list).Error
	return list, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id int) error {
	return notFoundIfNone(r.db.WithContext(ctx).Where("id_cliente = ?", id).Delete(&model.Cliente{}))
}
