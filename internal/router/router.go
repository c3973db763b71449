package router

import (
	"multilazos/internal/config"
	"multilazos/internal/handler"
	"multilazos/internal/middleware"
	"multilazos/internal/model"
	"multilazos/internal/repository"
	"multilazos/internal/service"
	"multilazos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil: the dim_fecha cache is skipped and async ETL runs answer 503.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Sesion(cfg.JWTSecret, cfg.SessionCookie, cfg.DefaultActor))
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler(!cfg.IsProduction()))
	r.Use(middleware.RateLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	dimFechaRepo := repository.NewCachedDimFechaRepository(repository.NewDimFechaRepository(db), rdb, cfg.DimFechaCacheTTL)
	tipoClienteRepo := repository.NewTipoClienteRepository(db)
	categoriaProductoRepo := repository.NewCategoriaProductoRepository(db)
	categoriaGastoRepo := repository.NewCategoriaGastoRepository(db)
	tipoTransaccionRepo := repository.NewTipoTransaccionRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	detalleRepo := repository.NewDetalleVentaRepository(db)
	cuotaRepo := repository.NewCuotaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	bitacoraRepo := repository.NewBitacoraRepository(db)
	etlRunRepo := repository.NewEtlRunRepository(db)

	// Worker dispatcher: injected into the ETL service for async runs
	var cola service.Encolador
	if rdb != nil {
		cola = worker.NewDispatcher(rdb)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	dimFechaSvc := service.NewDimFechaService(dimFechaRepo)
	recalc := service.NewRecalculador(ventaRepo, detalleRepo)
	cuotaSvc := service.NewCuotaService(cuotaRepo, ventaRepo, pagoRepo, dimFechaRepo)
	detalleSvc := service.NewDetalleVentaService(ventaRepo, detalleRepo, productoRepo, recalc)
	ventaSvc := service.NewVentaService(ventaRepo, detalleRepo, productoRepo, clienteRepo, tipoTransaccionRepo,
		dimFechaRepo, bitacoraRepo, pagoRepo, recalc, cuotaSvc)
	clienteSvc := service.NewClienteService(clienteRepo, tipoClienteRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaProductoRepo)
	gastoSvc := service.NewGastoService(gastoRepo, categoriaGastoRepo, dimFechaRepo)
	bitacoraSvc := service.NewBitacoraService(bitacoraRepo)
	etlSvc := service.NewEtlService(etlRunRepo, cola, cfg.ProcsETL())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg.SessionCookie, cfg.IsProduction())
	dimFechaH := handler.NewDimFechaHandler(dimFechaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, detalleSvc, cuotaSvc)
	cuotasH := handler.NewCuotasHandler(cuotaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	bitacoraH := handler.NewBitacoraHandler(bitacoraSvc)
	etlH := handler.NewEtlHandler(etlSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb, cfg.LoginRateLimit), authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", middleware.RequireSesion(), authH.Me)
	}

	// Writes stamp the session user, or the default actor when anonymous.
	v1 := r.Group("/v1")
	{
		v1.GET("/dim-fecha", dimFechaH.Buscar)
		v1.GET("/dim-fecha/:id", dimFechaH.Obtener)

		handler.NewCatalogoHandler[model.TipoCliente](service.NewTipoClienteService(tipoClienteRepo)).
			Registrar(v1.Group("/tipo-clientes"))
		handler.NewCatalogoHandler[model.CategoriaProducto](service.NewCategoriaProductoService(categoriaProductoRepo)).
			Registrar(v1.Group("/categoria-productos"))
		handler.NewCatalogoHandler[model.CategoriaGasto](service.NewCategoriaGastoService(categoriaGastoRepo)).
			Registrar(v1.Group("/categoria-gastos"))
		handler.NewCatalogoHandler[model.TipoTransaccion](service.NewTipoTransaccionService(tipoTransaccionRepo)).
			Registrar(v1.Group("/tipo-transacciones"))

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", clientesH.Listar)
			clientes.POST("", clientesH.Crear)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		productos := v1.Group("/productos")
		{
			productos.GET("", productosH.Listar)
			productos.POST("", productosH.Crear)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		gastos := v1.Group("/gastos")
		{
			gastos.GET("", gastosH.Listar)
			gastos.POST("", gastosH.Crear)
			gastos.GET("/:id", gastosH.ObtenerPorID)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.DELETE("/:id", gastosH.Eliminar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", ventasH.Listar)
			ventas.POST("", ventasH.Crear)
			ventas.GET("/totales-mes", ventasH.TotalesPorMes)
			ventas.GET("/:id", ventasH.Obtener)
			ventas.PUT("/:id", ventasH.Actualizar)
			ventas.DELETE("/:id", ventasH.Eliminar)
			ventas.GET("/:id/pagos", ventasH.Pagos)
			ventas.POST("/:id/cuotas/generar", ventasH.GenerarCuotas)
			ventas.GET("/:id/detalle", ventasH.ListarDetalle)
			ventas.POST("/:id/detalle", ventasH.AgregarDetalle)
			ventas.PUT("/:id/detalle/:detalle_id", ventasH.ActualizarDetalle)
			ventas.DELETE("/:id/detalle/:detalle_id", ventasH.EliminarDetalle)
		}

		v1.GET("/cuotas", cuotasH.Listar)
		v1.POST("/cuotas/:id/asignar-pago", cuotasH.AsignarPago)

		v1.GET("/bitacora-ventas", bitacoraH.Listar)

		v1.POST("/etl/run", middleware.RequireSesion(), etlH.Run)
	}

	// Swagger UI: only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
