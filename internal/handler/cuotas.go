package handler

import (
	"net/http"

	"multilazos/internal/dto"
	"multilazos/internal/middleware"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

type CuotasHandler struct{ svc service.CuotaService }

func NewCuotasHandler(svc service.CuotaService) *CuotasHandler { return &CuotasHandler{svc: svc} }

// Listar godoc
// @Summary  Listar cuotas
// @Tags     cuotas
// @Produce  json
// @Param    q        query string false "Texto sobre 'venta:<id> n:<numero> <fecha>'"
// @Param    desde    query string false "Vencimiento desde (YYYY-MM-DD)"
// @Param    hasta    query string false "Vencimiento hasta (YYYY-MM-DD)"
// @Param    id_venta query int    false "Venta"
// @Success  200 {object} dto.Pagina[dto.CuotaResponse]
// @Router   /v1/cuotas [get]
func (h *CuotasHandler) Listar(c *gin.Context) {
	var filter dto.CuotaFilter
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

// AsignarPago godoc
// @Summary  Registrar un pago a través de una cuota
// @Description El pago queda asociado a la venta de la cuota. Sin fecha_iso se usa la fecha de hoy.
// @Tags     cuotas
// @Accept   json
// @Produce  json
// @Param    id   path int true "Cuota"
// @Param    body body dto.AsignarPagoRequest true "Monto y fecha"
// @Success  200 {object} dto.PagoResponse
// @Failure  400 {object} apierror.APIError
// @Failure  404 {object} apierror.APIError
// @Router   /v1/cuotas/{id}/asignar-pago [post]
func (h *CuotasHandler) AsignarPago(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
