package repository

import (
	"context"
	"time"

	"multilazos/internal/dto"
	"multilazos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TotalMes is the sum of sale totals of one calendar month.
type TotalMes struct {
	Mes   string          // YYYY-MM
	Total decimal.Decimal
}

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, tx *gorm.DB, id int) (*model.Venta, error)
	UpdateHeader(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	UpdateTotal(ctx context.Context, tx *gorm.DB, id int, total decimal.Decimal, ahora time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	TotalesPorMes(ctx context.Context) ([]TotalMes, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, tx *gorm.DB, id int) (*model.Venta, error) {
	var v model.Venta
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Cliente").Preload("TipoTransaccion").Preload("Fecha").
		Where("id_venta = ?", id).Take(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateHeader writes the editable header columns. The total is left alone:
// only UpdateTotal writes it.
func (r *ventaRepo) UpdateHeader(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	res := conn(r.db, tx).WithContext(ctx).Model(&model.Venta{}).
		Where("id_venta = ?", v.ID).
		Updates(map[string]interface{}{
			"id_cliente":           v.ClienteID,
			"id_tipo_transaccion":  v.TipoTransaccionID,
			"id_fecha":             v.FechaID,
			"plazo_mes":            v.PlazoMes,
			"interes":              v.Interes,
			"fecha_modificacion":   v.FechaModificacion,
			"usuario_modificacion": v.UsuarioModificacion,
		})
	return notFoundIfNone(res)
}

func (r *ventaRepo) UpdateTotal(ctx context.Context, tx *gorm.DB, id int, total decimal.Decimal, ahora time.Time) error {
	res := conn(r.db, tx).WithContext(ctx).Model(&model.Venta{}).
		Where("id_venta = ?", id).
		Updates(map[string]interface{}{
			"total_venta_final":  total,
			"fecha_modificacion": ahora,
		})
	return notFoundIfNone(res)
}

// Delete removes the sale; line items, installments and payments go with it
// through ON DELETE CASCADE.
func (r *ventaRepo) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	res := conn(r.db, tx).WithContext(ctx).Where("id_venta = ?", id).Delete(&model.Venta{})
	return notFoundIfNone(res)
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Search != "" {
		like := likePattern(filter.Search)
		q = q.Joins("JOIN clientes c ON c.id_cliente = ventas.id_cliente").
			Where("LOWER(c.nombre_cliente) LIKE ? OR LOWER(c.apellido_cliente) LIKE ?", like, like)
	}
	if filter.ClienteID > 0 {
		q = q.Where("ventas.id_cliente = ?", filter.ClienteID)
	}
	if filter.TipoTransaccionID > 0 {
		q = q.Where("ventas.id_tipo_transaccion = ?", filter.TipoTransaccionID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("TipoTransaccion").Preload("Fecha").
		Order("ventas.id_venta DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) TotalesPorMes(ctx context.Context) ([]TotalMes, error) {
	var rows []struct {
		Mes   string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("ventas v").
		Select("TO_CHAR(d.fecha, 'YYYY-MM') AS mes, COALESCE(SUM(v.total_venta_final), 0) AS total").
		Joins("JOIN dim_fecha d ON d.id_fecha = v.id_fecha").
		Group("TO_CHAR(d.fecha, 'YYYY-MM')").
		Order("mes").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]TotalMes, len(rows))
	for i, row := range rows {
		out[i] = TotalMes{Mes: row.Mes, Total: row.Total}
	}
	return out, nil
}
