// Package metrics exposes the Prometheus collectors of the sale ledger and the
// HTTP layer. Collectors are registered on the default registry, which
// /metrics serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Motivos for which an installment schedule is not generated.
const (
	OmitidaContado       = "contado"
	OmitidaExistente     = "existente"
	OmitidaSinMonto      = "sin_monto"
	OmitidaFechaFaltante = "fecha_faltante"
)

var (
	VentasCreadas = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "multilazos",
		Name:      "ventas_creadas_total",
		Help:      "Sales created, by kind (contado|credito).",
	}, []string{"tipo"})

	CuotasGeneradas = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "multilazos",
		Name:      "cuotas_generadas_total",
		Help:      "Installment rows inserted.",
	})

	CronogramasOmitidos = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "multilazos",
		Name:      "cronogramas_omitidos_total",
		Help:      "Schedule generations skipped or installments dropped, by reason.",
	}, []string{"motivo"})

	Recalculos = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "multilazos",
		Name:      "recalculos_total",
		Help:      "Sale total recalculations.",
	})

	PagosRegistrados = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "multilazos",
		Name:      "pagos_registrados_total",
		Help:      "Payments recorded through installments.",
	})

	EtlEjecuciones = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "multilazos",
		Name:      "etl_ejecuciones_total",
		Help:      "Stored-procedure invocations, by procedure and outcome.",
	}, []string{"proc", "estado"})

	JobsDLQ = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "multilazos",
		Name:      "jobs_dlq",
		Help:      "Jobs waiting in the dead letter queue, by source queue.",
	}, []string{"queue"})

	HTTPDuracion = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "multilazos",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		VentasCreadas,
		CuotasGeneradas,
		CronogramasOmitidos,
		Recalculos,
		PagosRegistrados,
		EtlEjecuciones,
		JobsDLQ,
		HTTPDuracion,
	)
}
