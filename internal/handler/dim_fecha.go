package handler

import (
	"net/http"

	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

type DimFechaHandler struct{ svc service.DimFechaService }

func NewDimFechaHandler(svc service.DimFechaService) *DimFechaHandler {
	return &DimFechaHandler{svc: svc}
}

// Buscar GET /v1/dim-fecha?fecha=YYYY-MM-DD
func (h *DimFechaHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/dim-fecha/:id
func (h *DimFechaHandler) Obtener(c *gin.Context) {
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
