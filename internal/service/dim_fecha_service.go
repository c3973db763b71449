package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/repository"
)

// DimFechaService resolves calendar dates to date-dimension keys and back.
// Lookups are exact and never create rows.
type DimFechaService interface {
	IDPorFecha(ctx context.Context, fecha time.Time) (int, error)
	FechaPorID(ctx context.Context, id int) (time.Time, error)
	// Buscar parses a YYYY-MM-DD string and resolves it.
	Buscar(ctx context.Context, fechaISO string) (*dto.DimFechaResponse, error)
	Obtener(ctx context.Context, id int) (*dto.DimFechaResponse, error)
}

type dimFechaService struct {
	repo repository.DimFechaRepository
}

func NewDimFechaService(repo repository.DimFechaRepository) DimFechaService {
	return &dimFechaService{repo: repo}
}

func (s *dimFechaService) IDPorFecha(ctx context.Context, fecha time.Time) (int, error) {
	id, err := s.repo.FindIDByFecha(ctx, fecha)
	if err != nil {
		return 0, noEncontrado(err, fmt.Sprintf("No existe en dim_fecha: %s", fecha.Format(time.DateOnly)))
	}
	return id, nil
}

func (s *dimFechaService) FechaPorID(ctx context.Context, id int) (time.Time, error) {
	f, err := s.repo.FindFechaByID(ctx, id)
	if err != nil {
		return time.Time{}, noEncontrado(err, "id_fecha no encontrado")
	}
	return f, nil
}

func (s *dimFechaService) Buscar(ctx context.Context, fechaISO string) (*dto.DimFechaResponse, error) {
	fechaISO = strings.TrimSpace(fechaISO)
	f, err := time.Parse(time.DateOnly, fechaISO)
	if err != nil {
		return nil, apierror.Validacion("Parámetro 'fecha' (YYYY-MM-DD) es obligatorio.")
	}
	id, err := s.IDPorFecha(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.DimFechaResponse{ID: id, Fecha: fechaISO}, nil
}

func (s *dimFechaService) Obtener(ctx context.Context, id int) (*dto.DimFechaResponse, error) {
	f, err := s.FechaPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DimFechaResponse{ID: id, Fecha: f.Format(time.DateOnly)}, nil
}
