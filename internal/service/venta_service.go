package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/metrics"
	"multilazos/internal/model"
	"multilazos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, req dto.CrearVentaRequest, actor string) (*dto.CrearVentaResponse, error)
	Obtener(ctx context.Context, id int) (*dto.VentaResponse, error)
	Actualizar(ctx context.Context, id int, req dto.GuardarVentaRequest, actor string) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id int, actor string) error
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.Pagina[dto.VentaResponse], error)
	TotalesPorMes(ctx context.Context) ([]dto.TotalMesResponse, error)
	ListarPagos(ctx context.Context, id int) ([]dto.PagoItemResponse, error)
}

type ventaService struct {
	repo      repository.VentaRepository
	detalles  repository.DetalleVentaRepository
	productos repository.ProductoRepository
	clientes  repository.ClienteRepository
	tipos     repository.CatalogoRepository[model.TipoTransaccion]
	dimFecha  repository.DimFechaRepository
	bitacora  repository.BitacoraRepository
	pagos     repository.PagoRepository
	recalc    *Recalculador
	cuotas    CuotaService
}

func NewVentaService(
	repo repository.VentaRepository,
	detalles repository.DetalleVentaRepository,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	tipos repository.CatalogoRepository[model.TipoTransaccion],
	dimFecha repository.DimFechaRepository,
	bitacora repository.BitacoraRepository,
	pagos repository.PagoRepository,
	recalc *Recalculador,
	cuotas CuotaService,
) VentaService {
	return &ventaService{
		repo:      repo,
		detalles:  detalles,
		productos: productos,
		clientes:  clientes,
		tipos:     tipos,
		dimFecha:  dimFecha,
		bitacora:  bitacora,
		pagos:     pagos,
		recalc:    recalc,
		cuotas:    cuotas,
	}
}

// ── Reglas de cabecera ────────────────────────────────────────────────────────

func plazosTexto() string {
	s := make([]string, len(model.PlazosValidos))
	for i, p := range model.PlazosValidos {
		s[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// resolverCabecera validates the references of a sale header and applies the
// cash/credit rules: cash forces plazo 0 and interest 0; credit requires a
// supported plazo and copies the client type's rate as a percentage.
func (s *ventaService) resolverCabecera(ctx context.Context, req dto.GuardarVentaRequest) (*model.Venta, error) {
	cliente, err := s.clientes.FindByID(ctx, nil, req.ClienteID)
	if err != nil {
		return nil, referenciaInvalida(err, "Cliente inválido.")
	}
	if _, err := s.tipos.ObtenerPorID(ctx, req.TipoTransaccionID); err != nil {
		return nil, referenciaInvalida(err, "Tipo de transacción inválido.")
	}
	if _, err := s.dimFecha.FindFechaByID(ctx, req.FechaID); err != nil {
		return nil, referenciaInvalida(err, "id_fecha no existe en dim_fecha.")
	}

	v := &model.Venta{
		ClienteID:         req.ClienteID,
		TipoTransaccionID: req.TipoTransaccionID,
		FechaID:           req.FechaID,
		Interes:           decimal.Zero,
	}
	if !v.EsCredito() {
		return v, nil
	}

	if req.PlazoMes == nil {
		return nil, apierror.Validacion("plazo_mes es obligatorio para crédito.")
	}
	if !model.PlazoValido(*req.PlazoMes) {
		return nil, apierror.Validacionf("plazo_mes inválido. Valores: %s", plazosTexto())
	}
	v.PlazoMes = *req.PlazoMes
	if cliente.TipoCliente != nil {
		v.Interes = cliente.TipoCliente.TasaPorcentual()
	}
	return v, nil
}

// ventaSnapshot is the JSON image of a sale header stored in the audit trail.
type ventaSnapshot struct {
	ID                int    `json:"id_venta"`
	ClienteID         int    `json:"id_cliente"`
	TipoTransaccionID int    `json:"id_tipo_transaccion"`
	FechaID           int    `json:"id_fecha"`
	PlazoMes          int    `json:"plazo_mes"`
	Interes           string `json:"interes"`
	TotalVentaFinal   string `json:"total_venta_final"`
}

func snapshot(v *model.Venta) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(ventaSnapshot{
		ID:                v.ID,
		ClienteID:         v.ClienteID,
		TipoTransaccionID: v.TipoTransaccionID,
		FechaID:           v.FechaID,
		PlazoMes:          v.PlazoMes,
		Interes:           dinero(v.Interes),
		TotalVentaFinal:   dinero(v.TotalVentaFinal),
	})
	return datatypes.JSON(b)
}

func (s *ventaService) auditar(ctx context.Context, tx *gorm.DB, ventaID int, op string, antes, despues *model.Venta, actor string) error {
	return s.bitacora.Create(ctx, tx, &model.BitacoraVenta{
		VentaID:         ventaID,
		Operacion:       op,
		DatosAnteriores: snapshot(antes),
		DatosNuevos:     snapshot(despues),
		UsuarioEvento:   actor,
		FechaEvento:     time.Now(),
	})
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// One transaction:
//   1. insert header (total 0)
//   2. insert inline line items, priced from the products
//   3. recalculate the total
//   4. generate the installment schedule (credit only)
//   5. audit INSERT

func (s *ventaService) Crear(ctx context.Context, req dto.CrearVentaRequest, actor string) (*dto.CrearVentaResponse, error) {
	venta, err := s.resolverCabecera(ctx, req.GuardarVentaRequest)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	items := make([]*model.DetalleVenta, 0, len(req.Detalles))
	vistos := make(map[int]bool, len(req.Detalles))
	for _, d := range req.Detalles {
		producto, err := s.productos.FindByID(ctx, nil, d.ProductoID)
		if err != nil {
			return nil, referenciaInvalida(err, "Producto inválido.")
		}
		cantidad, err := normalizarCantidad(d.Cantidad, "La cantidad debe ser > 0.")
		if err != nil {
			return nil, err
		}
		if vistos[d.ProductoID] {
			return nil, apierror.Integridad(msgProductoDuplicado, nil)
		}
		vistos[d.ProductoID] = true
		items = append(items, nuevoDetalle(0, producto, cantidad, actor, ahora))
	}

	venta.Creado(actor, ahora)
	venta.TotalVentaFinal = decimal.Zero
	var generadas int
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, venta); err != nil {
			return err
		}
		for _, d := range items {
			d.VentaID = venta.ID
			if err := insertarDetalle(ctx, tx, s.detalles, d); err != nil {
				return err
			}
		}
		total, err := s.recalc.RecalcularTotal(ctx, tx, venta.ID)
		if err != nil {
			return fmt.Errorf("recalcular total: %w", err)
		}
		venta.TotalVentaFinal = total

		if generadas, err = s.cuotas.GenerarCuotas(ctx, tx, venta); err != nil {
			return err
		}
		return s.auditar(ctx, tx, venta.ID, model.OperacionInsert, nil, venta, actor)
	})
	if err != nil {
		return nil, err
	}

	tipo := "contado"
	if venta.EsCredito() {
		tipo = "credito"
	}
	metrics.VentasCreadas.WithLabelValues(tipo).Inc()

	return &dto.CrearVentaResponse{
		ID:              venta.ID,
		TotalVentaFinal: dinero(venta.TotalVentaFinal),
		CuotasGeneradas: generadas,
	}, nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id int) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, noEncontrado(err, "Venta no encontrada")
	}
	resp := toVentaResponse(*v)
	return &resp, nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.Pagina[dto.VentaResponse], error) {
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	results := make([]dto.VentaResponse, len(ventas))
	for i, v := range ventas {
		results[i] = toVentaResponse(v)
	}
	return &dto.Pagina[dto.VentaResponse]{Count: total, Results: results}, nil
}

func (s *ventaService) TotalesPorMes(ctx context.Context) ([]dto.TotalMesResponse, error) {
	rows, err := s.repo.TotalesPorMes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TotalMesResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.TotalMesResponse{Mes: r.Mes, Total: dinero(r.Total)}
	}
	return out, nil
}

func (s *ventaService) ListarPagos(ctx context.Context, id int) ([]dto.PagoItemResponse, error) {
	if _, err := s.repo.FindByID(ctx, nil, id); err != nil {
		return nil, noEncontrado(err, "Venta no encontrada")
	}
	pagos, err := s.pagos.ListByVenta(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagoItemResponse, len(pagos))
	for i, p := range pagos {
		out[i] = dto.PagoItemResponse{
			ID:              p.ID,
			VentaID:         p.VentaID,
			FechaID:         p.FechaID,
			MontoPago:       dinero(p.MontoPago),
			UsuarioCreacion: p.UsuarioCreacion,
		}
		if p.Fecha != nil {
			iso := p.Fecha.ISO()
			out[i].Fecha = &iso
		}
	}
	return out, nil
}

// ── Actualizar / Eliminar ─────────────────────────────────────────────────────

// Actualizar edits the header, re-applying the cash/credit rules, and
// recalculates the total. An existing schedule is never regenerated.
func (s *ventaService) Actualizar(ctx context.Context, id int, req dto.GuardarVentaRequest, actor string) (*dto.VentaResponse, error) {
	actual, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, noEncontrado(err, "Venta no encontrada")
	}
	nueva, err := s.resolverCabecera(ctx, req)
	if err != nil {
		return nil, err
	}

	antes := *actual
	actual.ClienteID = nueva.ClienteID
	actual.TipoTransaccionID = nueva.TipoTransaccionID
	actual.FechaID = nueva.FechaID
	actual.PlazoMes = nueva.PlazoMes
	actual.Interes = nueva.Interes
	actual.Modificado(actor, time.Now())

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeader(ctx, tx, actual); err != nil {
			return noEncontrado(err, "Venta no encontrada")
		}
		total, err := s.recalc.RecalcularTotal(ctx, tx, id)
		if err != nil {
			return err
		}
		actual.TotalVentaFinal = total
		return s.auditar(ctx, tx, id, model.OperacionUpdate, &antes, actual, actor)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// Eliminar deletes the sale; items, installments and payments cascade.
func (s *ventaService) Eliminar(ctx context.Context, id int, actor string) error {
	actual, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return noEncontrado(err, "Venta no encontrada")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return noEncontrado(err, "Venta no encontrada")
		}
		return s.auditar(ctx, tx, id, model.OperacionDelete, actual, nil, actor)
	})
}

func toVentaResponse(v model.Venta) dto.VentaResponse {
	r := dto.VentaResponse{
		ID:                v.ID,
		ClienteID:         v.ClienteID,
		TipoTransaccionID: v.TipoTransaccionID,
		FechaID:           v.FechaID,
		PlazoMes:          v.PlazoMes,
		Interes:           dinero(v.Interes),
		TotalVentaFinal:   dinero(v.TotalVentaFinal),
	}
	if v.Cliente != nil {
		r.Cliente = v.Cliente.NombreCompleto()
	}
	if v.TipoTransaccion != nil {
		r.TipoTransaccion = &v.TipoTransaccion.Nombre
	}
	if v.Fecha != nil {
		iso := v.Fecha.ISO()
		r.Fecha = &iso
	}
	return r
}
