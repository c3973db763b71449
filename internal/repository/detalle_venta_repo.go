package repository

import (
	"context"

	"multilazos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DetalleVentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, d *model.DetalleVenta) error
	FindByID(ctx context.Context, tx *gorm.DB, ventaID, id int) (*model.DetalleVenta, error)
	ExisteProducto(ctx context.Context, tx *gorm.DB, ventaID, productoID int) (bool, error)
	UpdateCantidad(ctx context.Context, tx *gorm.DB, d *model.DetalleVenta) error
	Delete(ctx context.Context, tx *gorm.DB, ventaID, id int) error
	ListByVenta(ctx context.Context, ventaID int) ([]model.DetalleVenta, error)
	SumSubtotal(ctx context.Context, tx *gorm.DB, ventaID int) (decimal.Decimal, error)
}

type detalleVentaRepo struct{ db *gorm.DB }

func NewDetalleVentaRepository(db *gorm.DB) DetalleVentaRepository {
	return &detalleVentaRepo{db: db}
}

func (r *detalleVentaRepo) Create(ctx context.Context, tx *gorm.DB, d *model.DetalleVenta) error {
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

// FindByID only matches items that belong to ventaID.
func (r *detalleVentaRepo) FindByID(ctx context.Context, tx *gorm.DB, ventaID, id int) (*model.DetalleVenta, error) {
	var d model.DetalleVenta
	err := conn(r.db, tx).WithContext(ctx).
		Where("id_detalle_venta = ? AND id_venta = ?", id, ventaID).
		Take(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *detalleVentaRepo) ExisteProducto(ctx context.Context, tx *gorm.DB, ventaID, productoID int) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).Model(&model.DetalleVenta{}).
		Where("id_venta = ? AND id_producto = ?", ventaID, productoID).
		Count(&n).Error
	return n > 0, err
}

func (r *detalleVentaRepo) UpdateCantidad(ctx context.Context, tx *gorm.DB, d *model.DetalleVenta) error {
	res := conn(r.db, tx).WithContext(ctx).Model(&model.DetalleVenta{}).
		Where("id_detalle_venta = ?", d.ID).
		Updates(map[string]interface{}{
			"cantidad":             d.Cantidad,
			"subtotal":             d.Subtotal,
			"fecha_modificacion":   d.FechaModificacion,
			"usuario_modificacion": d.UsuarioModificacion,
		})
	return notFoundIfNone(res)
}

func (r *detalleVentaRepo) Delete(ctx context.Context, tx *gorm.DB, ventaID, id int) error {
	res := conn(r.db, tx).WithContext(ctx).
		Where("id_detalle_venta = ? AND id_venta = ?", id, ventaID).
		Delete(&model.DetalleVenta{})
	return notFoundIfNone(res)
}

func (r *detalleVentaRepo) ListByVenta(ctx context.Context, ventaID int) ([]model.DetalleVenta, error) {
	var list []model.DetalleVenta
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("id_venta = ?", ventaID).
		Order("id_detalle_venta").
		Find(&list).Error
	return list, err
}

// SumSubtotal adds the persisted subtotals of the sale's items; zero when it has none.
func (r *detalleVentaRepo) SumSubtotal(ctx context.Context, tx *gorm.DB, ventaID int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := conn(r.db, tx).WithContext(ctx).Model(&model.DetalleVenta{}).
		Select("COALESCE(SUM(subtotal), 0)").
		Where("id_venta = ?", ventaID).
		Row().Scan(&sum)
	return sum, err
}
