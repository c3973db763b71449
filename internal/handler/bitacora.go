package handler

import (
	"net/http"

	"multilazos/internal/dto"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

type BitacoraHandler struct{ svc service.BitacoraService }

func NewBitacoraHandler(svc service.BitacoraService) *BitacoraHandler {
	return &BitacoraHandler{svc: svc}
}

// Listar GET /v1/bitacora-ventas
func (h *BitacoraHandler) Listar(c *gin.Context) {
	var filter dto.BitacoraFilter
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
