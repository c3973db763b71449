package service_test

import (
	"context"
	"strings"
	"testing"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogo_CrearRecortaNombre(t *testing.T) {
	repo := newStubCatalogo[model.CategoriaProducto, *model.CategoriaProducto]()
	svc := service.NewCategoriaProductoService(repo)

	c, err := svc.Crear(context.Background(), dto.GuardarCatalogoRequest{Nombre: "  Lazos  "})
	require.NoError(t, err)
	assert.Equal(t, "Lazos", c.Nombre)
	assert.NotZero(t, c.ID)
}

func TestCatalogo_NombreUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := newStubCatalogo[model.CategoriaProducto, *model.CategoriaProducto](
		&model.CategoriaProducto{ID: 1, Nombre: "Lazos"},
		&model.CategoriaProducto{ID: 2, Nombre: "Cintas"},
	)
	svc := service.NewCategoriaProductoService(repo)

	_, err := svc.Crear(ctx, dto.GuardarCatalogoRequest{Nombre: "LAZOS"})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindIntegrity))
	assert.Equal(t, "Ya existe un registro con ese nombre.", apierror.Message(err, false))

	// renaming a row to its own name is allowed
	c, err := svc.Actualizar(ctx, 1, dto.GuardarCatalogoRequest{Nombre: "lazos"})
	require.NoError(t, err)
	assert.Equal(t, "lazos", c.Nombre)

	_, err = svc.Actualizar(ctx, 2, dto.GuardarCatalogoRequest{Nombre: "Lazos"})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindIntegrity))
}

func TestCatalogo_NombreInvalido(t *testing.T) {
	svc := service.NewCategoriaGastoService(newStubCatalogo[model.CategoriaGasto, *model.CategoriaGasto]())

	for _, nombre := range []string{"", "   ", strings.Repeat("ñ", 101)} {
		_, err := svc.Crear(context.Background(), dto.GuardarCatalogoRequest{Nombre: nombre})
		require.Error(t, err)
		assert.True(t, apierror.Is(err, apierror.KindValidation))
	}

	c, err := svc.Crear(context.Background(), dto.GuardarCatalogoRequest{Nombre: strings.Repeat("ñ", 100)})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestCatalogo_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTipoTransaccionService(newStubCatalogo[model.TipoTransaccion, *model.TipoTransaccion]())

	_, err := svc.Obtener(ctx, 9)
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
	assert.Equal(t, "Tipo de transacción no encontrado", apierror.Message(err, false))

	err = svc.Eliminar(ctx, 9)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

func TestTipoCliente_Tasa(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTipoClienteService(newStubCatalogo[model.TipoCliente, *model.TipoCliente]())

	tasa := dec("0.155")
	c, err := svc.Crear(ctx, dto.GuardarCatalogoRequest{Nombre: "Mayorista", TasaInteresDefault: &tasa})
	require.NoError(t, err)
	assert.Equal(t, "0.16", c.TasaInteresDefault.StringFixed(2))
	assert.Equal(t, "16.00", c.TasaPorcentual().StringFixed(2))

	negativa := dec("-1")
	_, err = svc.Crear(ctx, dto.GuardarCatalogoRequest{Nombre: "Otro", TasaInteresDefault: &negativa})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	// omitted rate keeps the stored value
	c, err = svc.Actualizar(ctx, c.ID, dto.GuardarCatalogoRequest{Nombre: "Mayoristas"})
	require.NoError(t, err)
	assert.Equal(t, "0.16", c.TasaInteresDefault.StringFixed(2))
}

func TestTasaPorcentual(t *testing.T) {
	assert.Equal(t, "15.00", model.TipoCliente{TasaInteresDefault: dec("0.15")}.TasaPorcentual().StringFixed(2))
	assert.Equal(t, "100.00", model.TipoCliente{TasaInteresDefault: decimal.NewFromInt(1)}.TasaPorcentual().StringFixed(2))
	assert.Equal(t, "15.00", model.TipoCliente{TasaInteresDefault: dec("15")}.TasaPorcentual().StringFixed(2))
}

func TestCatalogo_Listar(t *testing.T) {
	repo := newStubCatalogo[model.CategoriaProducto, *model.CategoriaProducto](
		&model.CategoriaProducto{ID: 1, Nombre: "Lazos"},
		&model.CategoriaProducto{ID: 2, Nombre: "Cintas"},
	)
	svc := service.NewCategoriaProductoService(repo)

	p, err := svc.Listar(context.Background(), dto.PaginaFiltro{Page: 1, PageSize: 10, Search: " laz "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Count)
	require.Len(t, p.Results, 1)
	assert.Equal(t, "Lazos", p.Results[0].Nombre)

	vacio, err := svc.Listar(context.Background(), dto.PaginaFiltro{Page: 1, PageSize: 10, Search: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, vacio.Results)
	assert.Empty(t, vacio.Results)
}
