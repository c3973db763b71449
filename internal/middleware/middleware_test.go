package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/middleware"
	"multilazos/internal/model"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func sesionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Sesion(testSecret, "ml_session", "web"))
	r.GET("/actor", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": middleware.Actor(c)})
	})
	r.GET("/privado", middleware.RequireSesion(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.GetClaims(c).UserID})
	})
	return r
}

func signToken(t *testing.T, dur time.Duration) string {
	t.Helper()
	tok, err := service.FirmarSesion(testSecret, &model.Usuario{ID: 7, Username: "ana"}, dur)
	require.NoError(t, err)
	return tok
}

func actorDe(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["actor"]
}

func TestSesion_AnonimoUsaActorPorDefecto(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/actor", nil)
	sesionRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "web", actorDe(t, w))
}

func TestSesion_TokenInvalidoNoRechaza(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/actor", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, -time.Second))
	sesionRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "web", actorDe(t, w))
}

func TestSesion_BearerYCookie(t *testing.T) {
	r := sesionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/actor", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, "ana", actorDe(t, w))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/actor", nil)
	req.AddCookie(&http.Cookie{Name: "ml_session", Value: signToken(t, time.Hour)})
	r.ServeHTTP(w, req)
	assert.Equal(t, "ana", actorDe(t, w))
}

func TestRequireSesion(t *testing.T) {
	r := sesionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/privado", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, time.Hour))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorHandler_MapeaTaxonomia(t *testing.T) {
	casos := []struct {
		err    error
		status int
		detail string
	}{
		{apierror.Validacion("La cantidad debe ser > 0."), http.StatusBadRequest, "La cantidad debe ser > 0."},
		{apierror.NoEncontrado("Venta no encontrada"), http.StatusNotFound, "Venta no encontrada"},
		{apierror.ReferenciaInvalida("Producto inválido."), http.StatusBadRequest, "Producto inválido."},
		{apierror.Integridad("Este producto ya existe en la venta.", nil), http.StatusBadRequest, "Este producto ya existe en la venta."},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Error interno del servidor"},
	}

	gin.SetMode(gin.TestMode)
	for _, c := range casos {
		r := gin.New()
		r.Use(middleware.RequestID(), middleware.ErrorHandler(false))
		r.GET("/x", func(ctx *gin.Context) { _ = ctx.Error(c.err) })

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/x", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, c.status, w.Code, c.detail)
		var body apierror.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, c.detail, body.Detail)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	}
}

func TestErrorHandler_DebugMuestraCausa(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(true))
	r.GET("/x", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection refused")) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func limitedRouter(l *middleware.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(l.Middleware("Demasiadas solicitudes."))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func getDesde(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = ip + ":40000"
	r.ServeHTTP(w, req)
	return w
}

func TestLimiter_RechazaPasadoElLimite(t *testing.T) {
	r := limitedRouter(middleware.NewLimiter(nil, "ratelimit:test", 3, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, getDesde(r, "10.0.0.1").Code)
	}
	w := getDesde(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Demasiadas solicitudes.", body.Detail)

	// Other clients keep their own window.
	assert.Equal(t, http.StatusOK, getDesde(r, "10.0.0.2").Code)
}

func TestLimiter_VentanaNueva(t *testing.T) {
	l := middleware.NewLimiter(nil, "ratelimit:test", 1, 20*time.Millisecond)

	ok, _ := l.Permitir(context.Background(), "ana")
	assert.True(t, ok)
	ok, restante := l.Permitir(context.Background(), "ana")
	assert.False(t, ok)
	assert.LessOrEqual(t, restante, 20*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	ok, _ = l.Permitir(context.Background(), "ana")
	assert.True(t, ok)
}

func TestLimiter_LimiteCeroDesactiva(t *testing.T) {
	r := limitedRouter(middleware.NewLimiter(nil, "ratelimit:test", 0, time.Minute))
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, getDesde(r, "10.0.0.1").Code)
	}
}
