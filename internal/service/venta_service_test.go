package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plazo(n int) *int { return &n }

func cabecera(cliente, tipo int, fechaISO string, p *int) dto.GuardarVentaRequest {
	return dto.GuardarVentaRequest{ClienteID: cliente, TipoTransaccionID: tipo, FechaID: idFecha(fechaISO), PlazoMes: p}
}

func TestVentaCrear_ContadoIgnoraPlazo(t *testing.T) {
	ctx := context.Background()
	l := newLedger()

	resp, err := l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(2, tipoContado, "2024-03-01", plazo(12)),
		Detalles: []dto.AgregarDetalleRequest{
			{ProductoID: prodDiez, Cantidad: dec("2")},
			{ProductoID: prodCinco, Cantidad: dec("1")},
		},
	}, "ana")
	require.NoError(t, err)

	assert.Equal(t, "25.00", resp.TotalVentaFinal)
	assert.Equal(t, 0, resp.CuotasGeneradas)
	v := l.ventas.ventas[resp.ID]
	assert.Equal(t, 0, v.PlazoMes)
	assert.True(t, v.Interes.IsZero())
	assert.Empty(t, l.cuotas.deVenta(resp.ID))
}

func TestVentaCrear_CreditoCopiaTasaYGeneraCuotas(t *testing.T) {
	ctx := context.Background()
	l := newLedger()

	resp, err := l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(2, tipoCredito, "2024-01-31", plazo(3)),
		Detalles: []dto.AgregarDetalleRequest{
			{ProductoID: prodDiez, Cantidad: dec("2")},
			{ProductoID: prodCinco, Cantidad: dec("1")},
		},
	}, "ana")
	require.NoError(t, err)

	assert.Equal(t, "27.50", resp.TotalVentaFinal)
	assert.Equal(t, 3, resp.CuotasGeneradas)
	v := l.ventas.ventas[resp.ID]
	assert.Equal(t, "10.00", v.Interes.StringFixed(2))
	assert.Equal(t, "ana", *v.UsuarioCreacion)

	cuotas := l.cuotas.deVenta(resp.ID)
	require.Len(t, cuotas, 3)
	assert.Equal(t, idFecha("2024-02-29"), cuotas[0].FechaVencID)
	assert.Equal(t, "9.17", cuotas[0].MontoProgramado.StringFixed(2))

	require.Len(t, l.bitacora.entradas, 1)
	e := l.bitacora.entradas[0]
	assert.Equal(t, model.OperacionInsert, e.Operacion)
	assert.Equal(t, resp.ID, e.VentaID)
	assert.Equal(t, "ana", e.UsuarioEvento)
	assert.Nil(t, e.DatosAnteriores)

	var nuevos map[string]any
	require.NoError(t, json.Unmarshal(e.DatosNuevos, &nuevos))
	assert.Equal(t, "27.50", nuevos["total_venta_final"])
	assert.Equal(t, "10.00", nuevos["interes"])
}

func TestVentaCrear_SinDetallesNoGeneraCuotas(t *testing.T) {
	l := newLedger()
	resp, err := l.ventaSvc.Crear(context.Background(), dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(1, tipoCredito, "2024-01-31", plazo(6)),
	}, "ana")
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.TotalVentaFinal)
	assert.Equal(t, 0, resp.CuotasGeneradas)
}

func TestVentaCrear_ReglasDeCredito(t *testing.T) {
	ctx := context.Background()
	l := newLedger()

	_, err := l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{GuardarVentaRequest: cabecera(1, tipoCredito, "2024-01-31", nil)}, "ana")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindValidation))
	assert.Equal(t, "plazo_mes es obligatorio para crédito.", apierror.Message(err, false))

	_, err = l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{GuardarVentaRequest: cabecera(1, tipoCredito, "2024-01-31", plazo(5))}, "ana")
	require.Error(t, err)
	assert.Equal(t, "plazo_mes inválido. Valores: [3, 6, 9, 12, 24, 36, 48]", apierror.Message(err, false))

	assert.Empty(t, l.ventas.ventas)
	assert.Empty(t, l.bitacora.entradas)
}

func TestVentaCrear_ReferenciasInvalidas(t *testing.T) {
	ctx := context.Background()
	l := newLedger()

	casos := []struct {
		req dto.CrearVentaRequest
		msg string
	}{
		{dto.CrearVentaRequest{GuardarVentaRequest: cabecera(99, tipoContado, "2024-01-31", nil)}, "Cliente inválido."},
		{dto.CrearVentaRequest{GuardarVentaRequest: cabecera(1, 77, "2024-01-31", nil)}, "Tipo de transacción inválido."},
		{dto.CrearVentaRequest{GuardarVentaRequest: cabecera(1, tipoContado, "1990-01-01", nil)}, "id_fecha no existe en dim_fecha."},
		{dto.CrearVentaRequest{
			GuardarVentaRequest: cabecera(1, tipoContado, "2024-01-31", nil),
			Detalles:            []dto.AgregarDetalleRequest{{ProductoID: 50, Cantidad: dec("1")}},
		}, "Producto inválido."},
	}
	for _, c := range casos {
		_, err := l.ventaSvc.Crear(ctx, c.req, "ana")
		require.Error(t, err, c.msg)
		assert.Equal(t, 400, apierror.Status(err), c.msg)
		assert.Equal(t, c.msg, apierror.Message(err, false))
	}
	assert.Empty(t, l.ventas.ventas)
}

func TestVentaCrear_DetalleDuplicadoOCantidadInvalida(t *testing.T) {
	ctx := context.Background()
	l := newLedger()

	_, err := l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(1, tipoContado, "2024-01-31", nil),
		Detalles: []dto.AgregarDetalleRequest{
			{ProductoID: prodDiez, Cantidad: dec("1")},
			{ProductoID: prodDiez, Cantidad: dec("2")},
		},
	}, "ana")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindIntegrity))

	_, err = l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(1, tipoContado, "2024-01-31", nil),
		Detalles:            []dto.AgregarDetalleRequest{{ProductoID: prodDiez, Cantidad: dec("0")}},
	}, "ana")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	assert.Empty(t, l.ventas.ventas)
	assert.Empty(t, l.detalles.items)
}

func TestVentaActualizar_ReaplicaReglasYRecalcula(t *testing.T) {
	ctx := context.Background()
	l := newLedger()
	creada, err := l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(2, tipoCredito, "2024-01-31", plazo(3)),
		Detalles:            []dto.AgregarDetalleRequest{{ProductoID: prodDiez, Cantidad: dec("2")}},
	}, "ana")
	require.NoError(t, err)
	assert.Equal(t, "22.00", creada.TotalVentaFinal)

	resp, err := l.ventaSvc.Actualizar(ctx, creada.ID, cabecera(2, tipoContado, "2024-02-01", nil), "luis")
	require.NoError(t, err)
	assert.Equal(t, "20.00", resp.TotalVentaFinal)
	assert.Equal(t, "0.00", resp.Interes)
	assert.Equal(t, 0, resp.PlazoMes)
	assert.Equal(t, idFecha("2024-02-01"), resp.FechaID)

	// the existing schedule is left untouched
	assert.Len(t, l.cuotas.deVenta(creada.ID), 3)

	require.Len(t, l.bitacora.entradas, 2)
	e := l.bitacora.entradas[1]
	assert.Equal(t, model.OperacionUpdate, e.Operacion)
	assert.Equal(t, "luis", e.UsuarioEvento)

	var antes, despues map[string]any
	require.NoError(t, json.Unmarshal(e.DatosAnteriores, &antes))
	require.NoError(t, json.Unmarshal(e.DatosNuevos, &despues))
	assert.Equal(t, "22.00", antes["total_venta_final"])
	assert.Equal(t, "20.00", despues["total_venta_final"])

	_, err = l.ventaSvc.Actualizar(ctx, 404, cabecera(2, tipoContado, "2024-02-01", nil), "luis")
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}

func TestVentaEliminar_Audita(t *testing.T) {
	ctx := context.Background()
	l := newLedger()
	creada, err := l.ventaSvc.Crear(ctx, dto.CrearVentaRequest{
		GuardarVentaRequest: cabecera(1, tipoContado, "2024-01-31", nil),
	}, "ana")
	require.NoError(t, err)

	require.NoError(t, l.ventaSvc.Eliminar(ctx, creada.ID, "luis"))
	assert.Empty(t, l.ventas.ventas)

	e := l.bitacora.entradas[len(l.bitacora.entradas)-1]
	assert.Equal(t, model.OperacionDelete, e.Operacion)
	assert.NotNil(t, e.DatosAnteriores)
	assert.Nil(t, e.DatosNuevos)

	err = l.ventaSvc.Eliminar(ctx, creada.ID, "luis")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

func TestVentaListarPagos(t *testing.T) {
	ctx := context.Background()
	l := newLedger()
	id := l.ventaConTotal(t, tipoCredito, 3, "3", "2024-01-15")
	_, err := l.cuotaSvc.GenerarParaVenta(ctx, id)
	require.NoError(t, err)
	iso := "2024-02-20"
	_, err = l.cuotaSvc.RegistrarPago(ctx, l.cuotas.deVenta(id)[0].ID, dto.AsignarPagoRequest{MontoPago: dec("10"), FechaISO: &iso}, "luis")
	require.NoError(t, err)

	pagos, err := l.ventaSvc.ListarPagos(ctx, id)
	require.NoError(t, err)
	require.Len(t, pagos, 1)
	assert.Equal(t, "10.00", pagos[0].MontoPago)
	assert.Equal(t, idFecha(iso), pagos[0].FechaID)

	_, err = l.ventaSvc.ListarPagos(ctx, 999)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}
