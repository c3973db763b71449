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

type GastoService interface {
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.Pagina[dto.GastoResponse], error)
	Obtener(ctx context.Context, id int) (*dto.GastoResponse, error)
	Crear(ctx context.Context, req dto.GuardarGastoRequest, actor string) (*dto.GastoResponse, error)
	Actualizar(ctx context.Context, id int, req dto.GuardarGastoRequest, actor string) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, id int) error
}

type gastoService struct {
	repo       repository.GastoRepository
	categorias repository.CatalogoRepository[model.CategoriaGasto]
	dimFecha   repository.DimFechaRepository
}

func NewGastoService(repo repository.GastoRepository, categorias repository.CatalogoRepository[model.CategoriaGasto], dimFecha repository.DimFechaRepository) GastoService {
	return &gastoService{repo: repo, categorias: categorias, dimFecha: dimFecha}
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.Pagina[dto.GastoResponse], error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastoResponse, len(list))
	for i, g := range list {
		out[i] = toGastoResponse(g)
	}
	return &dto.Pagina[dto.GastoResponse]{Count: total, Results: out}, nil
}

func (s *gastoService) Obtener(ctx context.Context, id int) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "Gasto no encontrado")
	}
	resp := toGastoResponse(*g)
	return &resp, nil
}

func (s *gastoService) aplicar(ctx context.Context, g *model.Gasto, req dto.GuardarGastoRequest) error {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return apierror.Validacion("nombre_gasto es obligatorio.")
	}
	monto, err := montoNoNegativo("monto_gasto", req.Monto)
	if err != nil {
		return err
	}
	if _, err := s.categorias.ObtenerPorID(ctx, req.CategoriaGastoID); err != nil {
		return referenciaInvalida(err, "Categoría de gasto inválida.")
	}
	if _, err := s.dimFecha.FindFechaByID(ctx, req.FechaID); err != nil {
		return referenciaInvalida(err, "id_fecha no existe en dim_fecha.")
	}
	g.Nombre = nombre
	g.Monto = monto
	g.FechaID = req.FechaID
	g.CategoriaGastoID = req.CategoriaGastoID
	g.CategoriaGasto, g.Fecha = nil, nil
	return nil
}

func (s *gastoService) Crear(ctx context.Context, req dto.GuardarGastoRequest, actor string) (*dto.GastoResponse, error) {
	g := &model.Gasto{}
	if err := s.aplicar(ctx, g, req); err != nil {
		return nil, err
	}
	g.Creado(actor, time.Now())
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, g.ID)
}

func (s *gastoService) Actualizar(ctx context.Context, id int, req dto.GuardarGastoRequest, actor string) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "Gasto no encontrado")
	}
	if err := s.aplicar(ctx, g, req); err != nil {
		return nil, err
	}
	g.Modificado(actor, time.Now())
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *gastoService) Eliminar(ctx context.Context, id int) error {
	return noEncontrado(s.repo.Delete(ctx, id), "Gasto no encontrado")
}

func toGastoResponse(g model.Gasto) dto.GastoResponse {
	r := dto.GastoResponse{
		ID:                g.ID,
		Nombre:            g.Nombre,
		Monto:             dinero(g.Monto),
		FechaID:           g.FechaID,
		CategoriaGastoID:  g.CategoriaGastoID,
		FechaCreacion:     fechaHora(g.FechaCreacion),
		FechaModificacion: fechaHora(g.FechaModificacion),
	}
	if g.CategoriaGasto != nil {
		r.NombreCategoriaGasto = &g.CategoriaGasto.Nombre
	}
	if g.Fecha != nil {
		iso := g.Fecha.ISO()
		r.Fecha = &iso
	}
	return r
}
