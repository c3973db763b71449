package service

import (
	"context"
	"strings"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/repository"
)

// ProductoService manages the product master. Price changes only affect line
// items added afterwards: items keep the price copied when inserted.
type ProductoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.Pagina[dto.ProductoResponse], error)
	Obtener(ctx context.Context, id int) (*dto.ProductoResponse, error)
	Crear(ctx context.Context, req dto.GuardarProductoRequest, actor string) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id int, req dto.GuardarProductoRequest, actor string) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id int) error
}

type productoService struct {
	repo       repository.ProductoRepository
	categorias repository.CatalogoRepository[model.CategoriaProducto]
}

func NewProductoService(repo repository.ProductoRepository, categorias repository.CatalogoRepository[model.CategoriaProducto]) ProductoService {
	return &productoService{repo: repo, categorias: categorias}
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.Pagina[dto.ProductoResponse], error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, len(list))
	for i, p := range list {
		out[i] = toProductoResponse(p)
	}
	return &dto.Pagina[dto.ProductoResponse]{Count: total, Results: out}, nil
}

func (s *productoService) Obtener(ctx context.Context, id int) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, noEncontrado(err, "Producto no encontrado")
	}
	resp := toProductoResponse(*p)
	return &resp, nil
}

// aplicar validates req and copies it onto p.
func (s *productoService) aplicar(ctx context.Context, p *model.Producto, req dto.GuardarProductoRequest) error {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return apierror.Validacion("nombre_producto es obligatorio.")
	}
	precio, err := montoNoNegativo("precio_unitario", req.PrecioUnitario)
	if err != nil {
		return err
	}
	costo, err := montoNoNegativo("costo_unitario", req.CostoUnitario)
	if err != nil {
		return err
	}
	if req.CategoriaID != nil {
		if _, err := s.categorias.ObtenerPorID(ctx, *req.CategoriaID); err != nil {
			return referenciaInvalida(err, "Categoría inválida.")
		}
	}
	p.Nombre = nombre
	p.PrecioUnitario = precio
	p.CostoUnitario = costo
	p.CategoriaID = req.CategoriaID
	p.Categoria = nil
	return nil
}

func (s *productoService) Crear(ctx context.Context, req dto.GuardarProductoRequest, actor string) (*dto.ProductoResponse, error) {
	p := &model.Producto{}
	if err := s.aplicar(ctx, p, req); err != nil {
		return nil, err
	}
	p.Creado(actor, time.Now())
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, p.ID)
}

func (s *productoService) Actualizar(ctx context.Context, id int, req dto.GuardarProductoRequest, actor string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, noEncontrado(err, "Producto no encontrado")
	}
	if err := s.aplicar(ctx, p, req); err != nil {
		return nil, err
	}
	p.Modificado(actor, time.Now())
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *productoService) Eliminar(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return enUso(noEncontrado(err, "Producto no encontrado"))
	}
	return nil
}

func toProductoResponse(p model.Producto) dto.ProductoResponse {
	r := dto.ProductoResponse{
		ID:                p.ID,
		Nombre:            p.Nombre,
		PrecioUnitario:    dinero(p.PrecioUnitario),
		CostoUnitario:     dinero(p.CostoUnitario),
		CategoriaID:       p.CategoriaID,
		FechaCreacion:     fechaHora(p.FechaCreacion),
		FechaModificacion: fechaHora(p.FechaModificacion),
	}
	if p.Categoria != nil {
		r.NombreCategoria = &p.Categoria.Nombre
	}
	return r
}
