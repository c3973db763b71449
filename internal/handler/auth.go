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

type AuthHandler struct {
	svc    service.AuthService
	cookie string
	secure bool
}

// NewAuthHandler stores the session token in cookie; secure marks it
// HTTPS-only.
func NewAuthHandler(svc service.AuthService, cookie string, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie, secure: secure}
}

// Login godoc
// @Summary Login de usuario
// @Description Devuelve el token de sesión y además lo deja en una cookie HttpOnly.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCredenciales) {
			c.JSON(http.StatusUnauthorized, apierror.New("Credenciales inválidas"))
			return
		}
		fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie, resp.AccessToken, resp.ExpiresIn, "/", "", h.secure, true)
	c.JSON(http.StatusOK, resp)
}

// Logout POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"detail": "Sesión cerrada"})
}

// Me GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Me(c.Request.Context(), claims.Username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
