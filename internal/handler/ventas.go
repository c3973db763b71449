package handler

import (
	"net/http"

	"multilazos/internal/dto"
	"multilazos/internal/middleware"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct {
	svc      service.VentaService
	detalles service.DetalleVentaService
	cuotas   service.CuotaService
}

func NewVentasHandler(svc service.VentaService, detalles service.DetalleVentaService, cuotas service.CuotaService) *VentasHandler {
	return &VentasHandler{svc: svc, detalles: detalles, cuotas: cuotas}
}

// Crear godoc
// @Summary      Registrar una nueva venta
// @Description  Crea la cabecera y sus ítems en una transacción, recalcula el total y genera el cronograma de cuotas si es crédito.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearVentaRequest true "Cabecera e ítems de la venta"
// @Success      201  {object} dto.CrearVentaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar ventas
// @Tags     ventas
// @Produce  json
// @Param    page                query int    false "Página"
// @Param    page_size           query int    false "Tamaño de página"
// @Param    search              query string false "Cliente o id de venta"
// @Param    id_cliente          query int    false "Cliente"
// @Param    id_tipo_transaccion query int    false "Tipo de transacción"
// @Success  200 {object} dto.Pagina[dto.VentaResponse]
// @Router   /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	enlazar(c, resp, filter.Page, filter.PageSize)
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /v1/ventas/:id: edits the header only.
func (h *VentasHandler) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := h.svc.Actualizar(c.Request.Context(), id, req, middleware.Actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Actualizado"})
}

func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Eliminado"})
}

// TotalesPorMes GET /v1/ventas/totales-mes
func (h *VentasHandler) TotalesPorMes(c *gin.Context) {
	resp, err := h.svc.TotalesPorMes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagos GET /v1/ventas/:id/pagos
func (h *VentasHandler) Pagos(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerarCuotas godoc
// @Summary  Generar el cronograma de cuotas de una venta existente
// @Description No hace nada si la venta ya tiene cuotas, es de contado o su total es 0.
// @Tags     cuotas
// @Produce  json
// @Param    id path int true "Venta"
// @Success  200 {object} dto.GenerarCuotasResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id}/cuotas/generar [post]
func (h *VentasHandler) GenerarCuotas(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.cuotas.GenerarParaVenta(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Detalle ──────────────────────────────────────────────────────────────────

func (h *VentasHandler) ListarDetalle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.detalles.Listar(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarDetalle godoc
// @Summary  Agregar un ítem a la venta
// @Description El precio y el costo se copian del producto. Recalcula el total de la venta.
// @Tags     ventas
// @Accept   json
// @Produce  json
// @Param    id   path int true "Venta"
// @Param    body body dto.AgregarDetalleRequest true "Producto y cantidad"
// @Success  201 {object} dto.DetalleVentaResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/ventas/{id}/detalle [post]
func (h *VentasHandler) AgregarDetalle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarDetalleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.detalles.Agregar(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) ActualizarDetalle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	detalleID, ok := idParam(c, "detalle_id")
	if !ok {
		return
	}
	var req dto.ActualizarDetalleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := h.detalles.ActualizarCantidad(c.Request.Context(), id, detalleID, req.Cantidad, middleware.Actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Actualizado"})
}

func (h *VentasHandler) EliminarDetalle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	detalleID, ok := idParam(c, "detalle_id")
	if !ok {
		return
	}
	if err := h.detalles.Eliminar(c.Request.Context(), id, detalleID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Eliminado"})
}
