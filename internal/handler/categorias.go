package handler

import (
	"net/http"

	"multilazos/internal/dto"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves the CRUD of one lookup table. The same handler type
// backs tipos de cliente, categorías de productos y gastos, and tipos de
// transacción.
type CatalogoHandler[T any] struct {
	svc service.CatalogoService[T]
}

func NewCatalogoHandler[T any](svc service.CatalogoService[T]) *CatalogoHandler[T] {
	return &CatalogoHandler[T]{svc: svc}
}

func (h *CatalogoHandler[T]) Listar(c *gin.Context) {
	var filtro dto.PaginaFiltro
	if !bindQuery(c, &filtro) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		fail(c, err)
		return
	}
	enlazar(c, resp, filtro.Page, filtro.PageSize)
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler[T]) Obtener(c *gin.Context) {
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

func (h *CatalogoHandler[T]) Crear(c *gin.Context) {
	var req dto.GuardarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler[T]) Actualizar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler[T]) Eliminar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Registrar mounts the five routes on g.
func (h *CatalogoHandler[T]) Registrar(g *gin.RouterGroup) {
	g.GET("", h.Listar)
	g.POST("", h.Crear)
	g.GET("/:id", h.Obtener)
	g.PUT("/:id", h.Actualizar)
	g.DELETE("/:id", h.Eliminar)
}
