package repository

import (
	"context"

	"multilazos/internal/model"

	"gorm.io/gorm"
)

// CatalogoRepository defines CRUD operations shared by the lookup tables
// (tipos de cliente, categorías, tipos de transacción).
type CatalogoRepository[T any] interface {
	Crear(ctx context.Context, c *T) error
	Listar(ctx context.Context, search string, offset, limit int) ([]T, int64, error)
	ObtenerPorID(ctx context.Context, id int) (*T, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*T, error)
	Actualizar(ctx context.Context, c *T) error
	Eliminar(ctx context.Context, id int) error
}

type catalogoRepository[T any] struct {
	db     *gorm.DB
	pk     string
	nombre string
}

// NewCatalogoRepository builds a repository for the table of T, whose primary
// key and name columns are pk and nombre.
func NewCatalogoRepository[T any](db *gorm.DB, pk, nombre string) CatalogoRepository[T] {
	return &catalogoRepository[T]{db: db, pk: pk, nombre: nombre}
}

func NewTipoClienteRepository(db *gorm.DB) CatalogoRepository[model.TipoCliente] {
	return NewCatalogoRepository[model.TipoCliente](db, "id_tipo_cliente", "nombre_tipo_cliente")
}

func NewCategoriaProductoRepository(db *gorm.DB) CatalogoRepository[model.CategoriaProducto] {
	return NewCatalogoRepository[model.CategoriaProducto](db, "id_categoria", "nombre_categoria")
}

func NewCategoriaGastoRepository(db *gorm.DB) CatalogoRepository[model.CategoriaGasto] {
	return NewCatalogoRepository[model.CategoriaGasto](db, "id_categoria_gastos", "nombre_categoria")
}

func NewTipoTransaccionRepository(db *gorm.DB) CatalogoRepository[model.TipoTransaccion] {
	return NewCatalogoRepository[model.TipoTransaccion](db, "id_tipo_transaccion", "nombre_tipo_transaccion")
}

func (r *catalogoRepository[T]) Crear(ctx context.Context, c *T) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepository[T]) Listar(ctx context.Context, search string, offset, limit int) ([]T, int64, error) {
	var list []T
	var total int64
	q := r.db.WithContext(ctx).Model(new(T))
	if search != "" {
		q = q.Where("LOWER("+r.nombre+") LIKE ?", likePattern(search))
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order(r.nombre + " asc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

func (r *catalogoRepository[T]) ObtenerPorID(ctx context.Context, id int) (*T, error) {
	var c T
	if err := r.db.WithContext(ctx).Where(r.pk+" = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogoRepository[T]) ObtenerPorNombre(ctx context.Context, nombre string) (*T, error) {
	var c T
	err := r.db.WithContext(ctx).Where("LOWER("+r.nombre+") = LOWER(?)", nombre).Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogoRepository[T]) Actualizar(ctx context.Context, c *T) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *catalogoRepository[T]) Eliminar(ctx context.Context, id int) error {
	return notFoundIfNone(r.db.WithContext(ctx).Where(r.pk+" = ?", id).Delete(new(T)))
}
