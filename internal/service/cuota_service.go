package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/metrics"
	"multilazos/internal/model"
	"multilazos/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CuotaService generates installment schedules, lists installments and records
// payments through them.
type CuotaService interface {
	// GenerarCuotas derives the schedule of venta inside tx and returns how
	// many installments were inserted.
	GenerarCuotas(ctx context.Context, tx *gorm.DB, venta *model.Venta) (int, error)
	GenerarParaVenta(ctx context.Context, ventaID int) (*dto.GenerarCuotasResponse, error)
	Listar(ctx context.Context, filter dto.CuotaFilter) (*dto.Pagina[dto.CuotaResponse], error)
	RegistrarPago(ctx context.Context, cuotaID int, req dto.AsignarPagoRequest, actor string) (*dto.PagoResponse, error)
}

type cuotaService struct {
	cuotas   repository.CuotaRepository
	ventas   repository.VentaRepository
	pagos    repository.PagoRepository
	dimFecha repository.DimFechaRepository
}

func NewCuotaService(
	cuotas repository.CuotaRepository,
	ventas repository.VentaRepository,
	pagos repository.PagoRepository,
	dimFecha repository.DimFechaRepository,
) CuotaService {
	return &cuotaService{cuotas: cuotas, ventas: ventas, pagos: pagos, dimFecha: dimFecha}
}

// ── GenerarCuotas ─────────────────────────────────────────────────────────────
//   1. skip cash sales
//   2. skip if the sale already has installments
//   3. skip if plazo ≤ 0 or total ≤ 0
//   4. resolve each due date; an unresolved date drops that installment only
//   5. insert the remaining rows in one batch

func (s *cuotaService) GenerarCuotas(ctx context.Context, tx *gorm.DB, venta *model.Venta) (int, error) {
	if !venta.EsCredito() {
		metrics.CronogramasOmitidos.WithLabelValues(metrics.OmitidaContado).Inc()
		return 0, nil
	}

	existentes, err := s.cuotas.CountByVenta(ctx, tx, venta.ID)
	if err != nil {
		return 0, fmt.Errorf("contar cuotas: %w", err)
	}
	if existentes > 0 {
		metrics.CronogramasOmitidos.WithLabelValues(metrics.OmitidaExistente).Inc()
		return 0, nil
	}

	if venta.PlazoMes <= 0 || !venta.TotalVentaFinal.IsPositive() {
		metrics.CronogramasOmitidos.WithLabelValues(metrics.OmitidaSinMonto).Inc()
		return 0, nil
	}

	fechaBase, err := s.dimFecha.FindFechaByID(ctx, venta.FechaID)
	if err != nil {
		return 0, noEncontrado(err, "id_fecha no existe en dim_fecha.")
	}

	plan := GenerarCronograma(fechaBase, venta.PlazoMes, venta.TotalVentaFinal)
	cuotas := make([]model.CuotaCredito, 0, len(plan))
	for _, p := range plan {
		idFecha, err := s.dimFecha.FindIDByFecha(ctx, p.Vencimiento)
		if err != nil {
			if apierror.Is(err, apierror.KindNotFound) {
				metrics.CronogramasOmitidos.WithLabelValues(metrics.OmitidaFechaFaltante).Inc()
				log.Warn().
					Int("id_venta", venta.ID).
					Int("numero_cuota", p.Numero).
					Str("vencimiento", p.Vencimiento.Format(time.DateOnly)).
					Msg("vencimiento ausente en dim_fecha: cuota omitida")
				continue
			}
			return 0, err
		}
		cuotas = append(cuotas, model.CuotaCredito{
			VentaID:         venta.ID,
			NumeroCuota:     p.Numero,
			FechaVencID:     idFecha,
			MontoProgramado: p.Monto,
		})
	}

	if err := s.cuotas.CreateBatch(ctx, tx, cuotas); err != nil {
		return 0, fmt.Errorf("insertar cuotas: %w", err)
	}
	metrics.CuotasGeneradas.Add(float64(len(cuotas)))
	return len(cuotas), nil
}

// GenerarParaVenta runs the generator for an existing sale. It is a no-op when
// the sale already has a schedule.
func (s *cuotaService) GenerarParaVenta(ctx context.Context, ventaID int) (*dto.GenerarCuotasResponse, error) {
	var generadas int
	err := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		v, err := s.ventas.FindByID(ctx, tx, ventaID)
		if err != nil {
			return noEncontrado(err, "Venta no encontrada")
		}
		generadas, err = s.GenerarCuotas(ctx, tx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.GenerarCuotasResponse{VentaID: ventaID, Generadas: generadas}, nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

// Listar filters by sale and due-date range in the store; q matches the text
// "venta:<id> n:<numero> <YYYY-MM-DD>" case-insensitively.
func (s *cuotaService) Listar(ctx context.Context, filter dto.CuotaFilter) (*dto.Pagina[dto.CuotaResponse], error) {
	desde, err := parseFecha("desde", filter.Desde)
	if err != nil {
		return nil, err
	}
	hasta, err := parseFecha("hasta", filter.Hasta)
	if err != nil {
		return nil, err
	}

	cuotas, err := s.cuotas.List(ctx, repository.CuotaQuery{VentaID: filter.VentaID, Desde: desde, Hasta: hasta})
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Q))
	items := make([]dto.CuotaResponse, 0, len(cuotas))
	for _, c := range cuotas {
		r := toCuotaResponse(c)
		iso := ""
		if r.FechaVencISO != nil {
			iso = *r.FechaVencISO
		}
		texto := fmt.Sprintf("venta:%d n:%d %s", c.VentaID, c.NumeroCuota, iso)
		if q != "" && !strings.Contains(texto, q) {
			continue
		}
		items = append(items, r)
	}

	return &dto.Pagina[dto.CuotaResponse]{
		Count:   int64(len(items)),
		Results: paginar(items, filter.Page, filter.PageSize),
	}, nil
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────

// RegistrarPago appends a payment to the installment's sale. There is no
// balance or overpayment check and the payment is not linked to the installment.
func (s *cuotaService) RegistrarPago(ctx context.Context, cuotaID int, req dto.AsignarPagoRequest, actor string) (*dto.PagoResponse, error) {
	cuota, err := s.cuotas.FindByID(ctx, cuotaID)
	if err != nil {
		return nil, noEncontrado(err, "Cuota no encontrada")
	}

	if !req.MontoPago.IsPositive() {
		return nil, apierror.Validacion("monto_pago debe ser > 0")
	}
	if err := dosDecimales("monto_pago", req.MontoPago); err != nil {
		return nil, err
	}
	monto := req.MontoPago.Round(2)

	fecha := time.Now()
	if req.FechaISO != nil && strings.TrimSpace(*req.FechaISO) != "" {
		fecha, err = time.Parse(time.DateOnly, strings.TrimSpace(*req.FechaISO))
		if err != nil {
			return nil, apierror.Validacion("fecha_iso debe tener formato YYYY-MM-DD.")
		}
	}
	iso := model.SoloFecha(fecha).Format(time.DateOnly)
	idFecha, err := s.dimFecha.FindIDByFecha(ctx, fecha)
	if err != nil {
		return nil, referenciaInvalida(err, fmt.Sprintf("fecha %s no existe en dim_fecha", iso))
	}

	pago := &model.Pago{VentaID: cuota.VentaID, FechaID: idFecha, MontoPago: monto}
	pago.Creado(actor, time.Now())
	if err := s.pagos.Create(ctx, nil, pago); err != nil {
		return nil, err
	}
	metrics.PagosRegistrados.Inc()

	return &dto.PagoResponse{
		Detail:    "Pago registrado",
		ID:        pago.ID,
		VentaID:   pago.VentaID,
		FechaID:   pago.FechaID,
		MontoPago: dinero(pago.MontoPago),
	}, nil
}

func toCuotaResponse(c model.CuotaCredito) dto.CuotaResponse {
	r := dto.CuotaResponse{
		ID:              c.ID,
		VentaID:         c.VentaID,
		NumeroCuota:     c.NumeroCuota,
		FechaVencID:     c.FechaVencID,
		MontoProgramado: dinero(c.MontoProgramado),
	}
	if c.FechaVenc != nil {
		iso := c.FechaVenc.ISO()
		r.FechaVencISO = &iso
	}
	return r
}
