package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxNombreCatalogo = 100

// CatalogoService is the CRUD shared by the lookup tables.
type CatalogoService[T any] interface {
	Listar(ctx context.Context, filtro dto.PaginaFiltro) (*dto.Pagina[T], error)
	Obtener(ctx context.Context, id int) (*T, error)
	Crear(ctx context.Context, req dto.GuardarCatalogoRequest) (*T, error)
	Actualizar(ctx context.Context, id int, req dto.GuardarCatalogoRequest) (*T, error)
	Eliminar(ctx context.Context, id int) error
}

// catalogoPtr constrains PT to *T implementing model.Catalogo.
type catalogoPtr[T any] interface {
	*T
	model.Catalogo
}

type catalogoService[T any, PT catalogoPtr[T]] struct {
	repo    repository.CatalogoRepository[T]
	entidad string
	// extra applies fields beyond the name; nil for plain catalogs.
	extra func(PT, dto.GuardarCatalogoRequest) error
}

func newCatalogoService[T any, PT catalogoPtr[T]](repo repository.CatalogoRepository[T], entidad string, extra func(PT, dto.GuardarCatalogoRequest) error) CatalogoService[T] {
	return &catalogoService[T, PT]{repo: repo, entidad: entidad, extra: extra}
}

func NewTipoClienteService(repo repository.CatalogoRepository[model.TipoCliente]) CatalogoService[model.TipoCliente] {
	return newCatalogoService[model.TipoCliente, *model.TipoCliente](repo, "Tipo de cliente", aplicarTasa)
}

func NewCategoriaProductoService(repo repository.CatalogoRepository[model.CategoriaProducto]) CatalogoService[model.CategoriaProducto] {
	return newCatalogoService[model.CategoriaProducto, *model.CategoriaProducto](repo, "Categoría", nil)
}

func NewCategoriaGastoService(repo repository.CatalogoRepository[model.CategoriaGasto]) CatalogoService[model.CategoriaGasto] {
	return newCatalogoService[model.CategoriaGasto, *model.CategoriaGasto](repo, "Categoría de gasto", nil)
}

func NewTipoTransaccionService(repo repository.CatalogoRepository[model.TipoTransaccion]) CatalogoService[model.TipoTransaccion] {
	return newCatalogoService[model.TipoTransaccion, *model.TipoTransaccion](repo, "Tipo de transacción", nil)
}

func aplicarTasa(t *model.TipoCliente, req dto.GuardarCatalogoRequest) error {
	if req.TasaInteresDefault == nil {
		return nil
	}
	tasa := req.TasaInteresDefault.Round(2)
	if tasa.IsNegative() {
		return apierror.Validacion("tasa_interes_default debe ser >= 0.")
	}
	if tasa.GreaterThan(decimal.NewFromInt(999)) {
		return apierror.Validacion("tasa_interes_default fuera de rango.")
	}
	t.TasaInteresDefault = tasa
	return nil
}

func (s *catalogoService[T, PT]) Listar(ctx context.Context, filtro dto.PaginaFiltro) (*dto.Pagina[T], error) {
	items, total, err := s.repo.Listar(ctx, strings.TrimSpace(filtro.Search), filtro.Offset(), filtro.PageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return &dto.Pagina[T]{Count: total, Results: items}, nil
}

func (s *catalogoService[T, PT]) Obtener(ctx context.Context, id int) (*T, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, s.entidad+" no encontrado")
	}
	return c, nil
}

// validarNombre trims the name and checks length and case-insensitive
// uniqueness, ignoring the row being edited.
func (s *catalogoService[T, PT]) validarNombre(ctx context.Context, nombre string, propioID int) (string, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return "", apierror.Validacion("El nombre es obligatorio.")
	}
	if utf8.RuneCountInString(nombre) > maxNombreCatalogo {
		return "", apierror.Validacionf("El nombre no puede superar %d caracteres.", maxNombreCatalogo)
	}
	existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
	switch {
	case err == nil:
		if PT(existente).GetID() != propioID {
			return "", apierror.Integridad("Ya existe un registro con ese nombre.", nil)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", err
	}
	return nombre, nil
}

func (s *catalogoService[T, PT]) Crear(ctx context.Context, req dto.GuardarCatalogoRequest) (*T, error) {
	nombre, err := s.validarNombre(ctx, req.Nombre, 0)
	if err != nil {
		return nil, err
	}
	c := PT(new(T))
	c.SetNombre(nombre)
	if s.extra != nil {
		if err := s.extra(c, req); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Crear(ctx, (*T)(c)); err != nil {
		return nil, s.integridad(err)
	}
	return (*T)(c), nil
}

func (s *catalogoService[T, PT]) Actualizar(ctx context.Context, id int, req dto.GuardarCatalogoRequest) (*T, error) {
	actual, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	nombre, err := s.validarNombre(ctx, req.Nombre, id)
	if err != nil {
		return nil, err
	}
	c := PT(actual)
	c.SetNombre(nombre)
	if s.extra != nil {
		if err := s.extra(c, req); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Actualizar(ctx, actual); err != nil {
		return nil, s.integridad(err)
	}
	return actual, nil
}

func (s *catalogoService[T, PT]) Eliminar(ctx context.Context, id int) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado(s.entidad + " no encontrado")
		}
		return s.integridad(err)
	}
	return nil
}

func (s *catalogoService[T, PT]) integridad(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.Integridad("Ya existe un registro con ese nombre.", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apierror.Integridad("No se puede eliminar: tiene registros asociados.", err)
	}
	return err
}
