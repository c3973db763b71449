package handler

import (
	"errors"
	"net/http"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/middleware"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

type EtlHandler struct{ svc service.EtlService }

func NewEtlHandler(svc service.EtlService) *EtlHandler { return &EtlHandler{svc: svc} }

// Run godoc
// @Summary  Ejecutar procedimientos ETL
// @Description Ejecuta en orden los procedimientos pedidos (o los configurados por defecto) y audita cada uno. Se detiene en el primero que falla y responde 207.
// @Tags     etl
// @Accept   json
// @Produce  json
// @Param    body body dto.EtlRunRequest false "Procedimientos"
// @Success  200 {object} dto.EtlRunResponse
// @Success  202 {object} dto.EtlRunResponse
// @Success  207 {object} dto.EtlRunResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/etl/run [post]
func (h *EtlHandler) Run(c *gin.Context) {
	var req dto.EtlRunRequest
	if c.Request.ContentLength != 0 && !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()
	actor := middleware.Actor(c)

	if req.Async {
		jobID, err := h.svc.Encolar(ctx, req.Procs, actor)
		if errors.Is(err, service.ErrColaNoDisponible) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("Cola de trabajos no disponible"))
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusAccepted, dto.EtlRunResponse{Detail: "Encolado", JobID: jobID})
		return
	}

	results, err := h.svc.Ejecutar(ctx, req.Procs, actor)
	if errors.Is(err, service.ErrEtlParcial) {
		c.JSON(http.StatusMultiStatus, dto.EtlRunResponse{Detail: "Al menos un SP falló", Results: results})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EtlRunResponse{Results: results})
}
