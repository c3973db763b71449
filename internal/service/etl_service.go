package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/metrics"
	"multilazos/internal/model"
	"multilazos/internal/repository"

	"github.com/rs/zerolog/log"
)

const maxMensajeEtl = 500

var procValido = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

var (
	// ErrEtlParcial means a run stopped at a failing procedure. The results
	// returned alongside it include the failure.
	ErrEtlParcial = errors.New("al menos un SP falló")
	// ErrColaNoDisponible is returned for async runs when no queue is wired.
	ErrColaNoDisponible = errors.New("cola de trabajos no disponible")
)

// Encolador hands an ETL run to the background workers and returns the job id.
type Encolador interface {
	EncolarEtl(ctx context.Context, procs []string, actor string) (string, error)
}

// EtlService invokes ETL stored procedures in order and audits every call.
type EtlService interface {
	Ejecutar(ctx context.Context, procs []string, actor string) ([]dto.EtlResultado, error)
	Encolar(ctx context.Context, procs []string, actor string) (string, error)
}

type etlService struct {
	repo    repository.EtlRunRepository
	cola    Encolador
	defecto []string
}

func NewEtlService(repo repository.EtlRunRepository, cola Encolador, defecto []string) EtlService {
	return &etlService{repo: repo, cola: cola, defecto: defecto}
}

// procedimientos resolves the default list and validates every name before
// anything runs.
func (s *etlService) procedimientos(procs []string) ([]string, error) {
	if len(procs) == 0 {
		procs = s.defecto
	}
	if len(procs) == 0 {
		return nil, apierror.Validacion("procs debe ser una lista no vacía.")
	}
	out := make([]string, len(procs))
	for i, p := range procs {
		p = strings.TrimSpace(p)
		if !procValido.MatchString(p) {
			return nil, apierror.Validacionf("nombre de procedimiento inválido: %q", p)
		}
		out[i] = p
	}
	return out, nil
}

// Ejecutar runs procs one by one and stops at the first failure, returning
// ErrEtlParcial together with the results so far.
func (s *etlService) Ejecutar(ctx context.Context, procs []string, actor string) ([]dto.EtlResultado, error) {
	procs, err := s.procedimientos(procs)
	if err != nil {
		return nil, err
	}
	resultados := make([]dto.EtlResultado, 0, len(procs))
	for _, p := range procs {
		r := s.ejecutarUno(ctx, p, actor)
		resultados = append(resultados, r)
		if r.Status != model.EtlOK {
			return resultados, ErrEtlParcial
		}
	}
	return resultados, nil
}

func (s *etlService) ejecutarUno(ctx context.Context, proc, actor string) dto.EtlResultado {
	run := &model.EtlRun{Proceso: proc, Estado: model.EtlEnCurso, IniciadoEn: time.Now()}
	if actor != "" {
		run.Usuario = &actor
	}
	if err := s.repo.Create(ctx, run); err != nil {
		log.Error().Err(err).Str("proc", proc).Msg("etl: no se pudo registrar la ejecución")
	}

	filas, err := s.repo.Ejecutar(ctx, proc)
	run.Estado, run.FilasAfectadas, run.Mensaje = model.EtlOK, filas, "OK"
	if err != nil {
		run.Estado, run.FilasAfectadas, run.Mensaje = model.EtlError, -1, truncar(err.Error(), maxMensajeEtl)
	}
	fin := time.Now()
	run.FinalizadoEn = &fin
	if run.ID != 0 {
		if err := s.repo.Finalizar(ctx, run); err != nil {
			log.Error().Err(err).Str("proc", proc).Msg("etl: no se pudo cerrar la ejecución")
		}
	}

	metrics.EtlEjecuciones.WithLabelValues(proc, run.Estado).Inc()
	log.Info().
		Str("proc", proc).
		Str("estado", run.Estado).
		Int64("filas", run.FilasAfectadas).
		Dur("duracion", fin.Sub(run.IniciadoEn)).
		Msg("etl: procedimiento ejecutado")

	return dto.EtlResultado{Proc: proc, Status: run.Estado, Rows: run.FilasAfectadas, Message: run.Mensaje}
}

func (s *etlService) Encolar(ctx context.Context, procs []string, actor string) (string, error) {
	procs, err := s.procedimientos(procs)
	if err != nil {
		return "", err
	}
	if s.cola == nil {
		return "", ErrColaNoDisponible
	}
	return s.cola.EncolarEtl(ctx, procs, actor)
}

// truncar cuts s to at most n runes.
func truncar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
