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

type ClienteService interface {
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.Pagina[dto.ClienteResponse], error)
	Obtener(ctx context.Context, id int) (*dto.ClienteResponse, error)
	Crear(ctx context.Context, req dto.GuardarClienteRequest, actor string) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id int, req dto.GuardarClienteRequest, actor string) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id int) error
}

type clienteService struct {
	repo  repository.ClienteRepository
	tipos repository.CatalogoRepository[model.TipoCliente]
}

func NewClienteService(repo repository.ClienteRepository, tipos repository.CatalogoRepository[model.TipoCliente]) ClienteService {
	return &clienteService{repo: repo, tipos: tipos}
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.Pagina[dto.ClienteResponse], error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, len(list))
	for i, c := range list {
		out[i] = toClienteResponse(c)
	}
	return &dto.Pagina[dto.ClienteResponse]{Count: total, Results: out}, nil
}

func (s *clienteService) Obtener(ctx context.Context, id int) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, noEncontrado(err, "Cliente no encontrado")
	}
	resp := toClienteResponse(*c)
	return &resp, nil
}

func (s *clienteService) validar(ctx context.Context, req dto.GuardarClienteRequest) (nombre, apellido string, err error) {
	nombre, apellido = strings.TrimSpace(req.Nombre), strings.TrimSpace(req.Apellido)
	if nombre == "" || apellido == "" {
		return "", "", apierror.Validacion("Nombre y apellido son obligatorios.")
	}
	if _, err := s.tipos.ObtenerPorID(ctx, req.TipoClienteID); err != nil {
		return "", "", referenciaInvalida(err, "Tipo de cliente inválido.")
	}
	return nombre, apellido, nil
}

func (s *clienteService) Crear(ctx context.Context, req dto.GuardarClienteRequest, actor string) (*dto.ClienteResponse, error) {
	nombre, apellido, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}
	c := &model.Cliente{Nombre: nombre, Apellido: apellido, TipoClienteID: req.TipoClienteID}
	c.Creado(actor, time.Now())
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, c.ID)
}

func (s *clienteService) Actualizar(ctx context.Context, id int, req dto.GuardarClienteRequest, actor string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, noEncontrado(err, "Cliente no encontrado")
	}
	nombre, apellido, err := s.validar(ctx, req)
	if err != nil {
		return nil, err
	}
	c.Nombre, c.Apellido, c.TipoClienteID = nombre, apellido, req.TipoClienteID
	c.TipoCliente = nil
	c.Modificado(actor, time.Now())
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *clienteService) Eliminar(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return enUso(noEncontrado(err, "Cliente no encontrado"))
	}
	return nil
}

func toClienteResponse(c model.Cliente) dto.ClienteResponse {
	r := dto.ClienteResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Apellido:      c.Apellido,
		TipoClienteID: c.TipoClienteID,
	}
	if c.TipoCliente != nil {
		r.NombreTipoCliente = &c.TipoCliente.Nombre
	}
	return r
}
