package service

import (
	"context"
	"encoding/json"
	"strings"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/repository"
)

// BitacoraService exposes the sales audit trail, newest first.
type BitacoraService interface {
	Listar(ctx context.Context, filter dto.BitacoraFilter) (*dto.Pagina[dto.BitacoraResponse], error)
}

type bitacoraService struct {
	repo repository.BitacoraRepository
}

func NewBitacoraService(repo repository.BitacoraRepository) BitacoraService {
	return &bitacoraService{repo: repo}
}

func (s *bitacoraService) Listar(ctx context.Context, filter dto.BitacoraFilter) (*dto.Pagina[dto.BitacoraResponse], error) {
	op := strings.ToUpper(strings.TrimSpace(filter.Operacion))
	switch op {
	case "", model.OperacionInsert, model.OperacionUpdate, model.OperacionDelete:
	default:
		return nil, apierror.Validacion("operacion debe ser INSERT, UPDATE o DELETE.")
	}
	desde, err := parseFecha("desde", filter.Desde)
	if err != nil {
		return nil, err
	}
	hasta, err := parseFecha("hasta", filter.Hasta)
	if err != nil {
		return nil, err
	}

	list, total, err := s.repo.List(ctx, repository.BitacoraQuery{
		Q:         strings.TrimSpace(filter.Q),
		Operacion: op,
		VentaID:   filter.VentaID,
		Desde:     desde,
		Hasta:     hasta,
		Offset:    (filter.Page - 1) * filter.PageSize,
		Limit:     filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.BitacoraResponse, len(list))
	for i, b := range list {
		out[i] = dto.BitacoraResponse{
			ID:              b.ID,
			VentaID:         b.VentaID,
			Operacion:       b.Operacion,
			DatosAnteriores: jsonONull(b.DatosAnteriores),
			DatosNuevos:     jsonONull(b.DatosNuevos),
			UsuarioEvento:   b.UsuarioEvento,
			FechaEventoISO:  b.FechaEvento.Format("2006-01-02 15:04:05"),
		}
	}
	return &dto.Pagina[dto.BitacoraResponse]{Count: total, Results: out}, nil
}

func jsonONull(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(b)
}
