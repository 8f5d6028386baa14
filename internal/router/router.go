package router

import (
	"time"

	"colochas/internal/config"
	"colochas/internal/handler"
	"colochas/internal/infra"
	"colochas/internal/middleware"
	"colochas/internal/repository"
	"colochas/internal/service"
	"colochas/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the long-lived pieces main needs to start crons and the
// worker pool after the engine is built.
type Deps struct {
	Dispatcher *worker.Dispatcher
	Handlers   worker.Handlers
	Alertas    service.AlertaService
	Limpieza   service.LimpiezaService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	turnoRepo := repository.NewTurnoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	restriccionRepo := repository.NewRestriccionRepository(db)
	cierreRepo := repository.NewCierreRepository(db)
	sorteoRepo := repository.NewSorteoRepository(db)
	alertaRepo := repository.NewAlertaRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)
	limpiezaRepo := repository.NewLimpiezaRepository(db)
	kpiRepo := repository.NewKpiRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	turnoSvc := service.NewTurnoService(turnoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, turnoRepo, restriccionRepo, auditoriaRepo)
	restriccionSvc := service.NewRestriccionService(restriccionRepo, turnoRepo)
	cierreSvc := service.NewCierreService(cierreRepo, ventaRepo, turnoRepo)
	sorteoSvc := service.NewSorteoService(sorteoRepo, turnoRepo)
	alertaSvc := service.NewAlertaService(alertaRepo, turnoRepo, ventaRepo)
	historialSvc := service.NewHistorialService(ventaRepo)
	kpiSvc := service.NewKpiService(kpiRepo, ventaRepo)
	limpiezaSvc := service.NewLimpiezaService(limpiezaRepo, configRepo)
	configSvc := service.NewConfiguracionService(configRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	turnosH := handler.NewTurnosHandler(turnoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	restriccionesH := handler.NewRestriccionesHandler(restriccionSvc)
	cierresH := handler.NewCierresHandler(cierreSvc, dispatcher)
	sorteosH := handler.NewSorteosHandler(sorteoSvc)
	alertasH := handler.NewAlertasHandler(alertaSvc)
	historialH := handler.NewHistorialHandler(historialSvc)
	kpisH := handler.NewKpisHandler(kpiSvc)
	limpiezaH := handler.NewLimpiezaHandler(limpiezaSvc, cfg.LimpiezaDias)
	configH := handler.NewConfiguracionesHandler(configSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes. Roles: vendedor, supervisor, admin.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Turnos
		v1.GET("/turnos", middleware.RequireRole("vendedor", "supervisor", "admin"), turnosH.Listar)
		v1.GET("/turnos/:id", middleware.RequireRole("vendedor", "supervisor", "admin"), turnosH.ObtenerPorID)
		v1.GET("/turnos/:id/alerta-cierre", middleware.RequireRole("vendedor", "supervisor", "admin"), turnosH.AlertaCierre)
		turnos := v1.Group("/turnos", middleware.RequireRole("admin"))
		{
			turnos.POST("", turnosH.Crear)
			turnos.PUT("/:id", turnosH.Actualizar)
			turnos.DELETE("/:id", turnosH.Eliminar)
		}

		// Ventas
		v1.POST("/ventas", middleware.RequireRole("vendedor", "supervisor", "admin"), ventasH.Crear)
		v1.GET("/ventas/:id", middleware.RequireRole("vendedor", "supervisor", "admin"), ventasH.ObtenerPorID)
		v1.GET("/ventas/boucher/:numero", middleware.RequireRole("vendedor", "supervisor", "admin"), ventasH.BuscarBoucher)
		v1.DELETE("/ventas/:id", middleware.RequireRole("supervisor", "admin"), ventasH.Eliminar)

		// Restricciones
		rest := v1.Group("/restricciones", middleware.RequireRole("supervisor", "admin"))
		{
			rest.POST("", restriccionesH.Crear)
			rest.POST("/multiples", restriccionesH.CrearMultiples)
			rest.DELETE("/:id", restriccionesH.Eliminar)
			rest.DELETE("/turno/:turnoId/numero/:numero", restriccionesH.EliminarPorNumero)
			rest.POST("/eliminar-multiples", restriccionesH.EliminarMultiples)
		}
		v1.GET("/restricciones", middleware.RequireRole("vendedor", "supervisor", "admin"), restriccionesH.Listar)
		v1.GET("/restricciones/verificar/:turnoId/:numero", middleware.RequireRole("vendedor", "supervisor", "admin"), restriccionesH.Verificar)
		v1.POST("/restricciones/verificar-multiples", middleware.RequireRole("vendedor", "supervisor", "admin"), restriccionesH.VerificarMultiples)

		// Cierres
		v1.POST("/cierres", middleware.RequireRole("supervisor", "admin"), cierresH.Cerrar)
		v1.GET("/cierres/:turnoId", middleware.RequireRole("vendedor", "supervisor", "admin"), cierresH.Obtener)
		v1.GET("/cierres/:turnoId/reporte", middleware.RequireRole("vendedor", "supervisor", "admin"), cierresH.Reporte)

		// Sorteos
		v1.POST("/sorteos", middleware.RequireRole("supervisor", "admin"), sorteosH.Crear)
		v1.GET("/sorteos", middleware.RequireRole("vendedor", "supervisor", "admin"), sorteosH.Listar)
		v1.GET("/sorteos/:id", middleware.RequireRole("vendedor", "supervisor", "admin"), sorteosH.ObtenerPorID)
		v1.GET("/sorteos/turno/:turnoId", middleware.RequireRole("vendedor", "supervisor", "admin"), sorteosH.ObtenerPorTurnoFecha)

		// Alertas (per-user)
		v1.GET("/alertas", middleware.RequireRole("vendedor", "supervisor", "admin"), alertasH.Listar)
		v1.PATCH("/alertas/:id", middleware.RequireRole("vendedor", "supervisor", "admin"), alertasH.Marcar)

		// Historial y analisis
		v1.GET("/historial/ventas", middleware.RequireRole("vendedor", "supervisor", "admin"), historialH.Ventas)
		v1.GET("/historial/analisis-numeros", middleware.RequireRole("vendedor", "supervisor", "admin"), historialH.AnalisisNumeros)

		// KPIs (dashboard)
		kpis := v1.Group("/kpis", middleware.RequireRole("supervisor", "admin"))
		{
			kpis.GET("/numeros-mas-vendidos", kpisH.NumerosMasVendidos)
			kpis.GET("/empleados-mas-ventas", kpisH.EmpleadosMasVentas)
			kpis.GET("/ventas-hoy", kpisH.VentasHoy)
		}

		// Limpieza (retention)
		limpieza := v1.Group("/limpieza", middleware.RequireRole("admin"))
		{
			limpieza.POST("/ejecutar", limpiezaH.Ejecutar)
			limpieza.GET("/estadisticas", limpiezaH.Estadisticas)
			limpieza.GET("/ultima-ejecucion", limpiezaH.UltimaEjecucion)
		}

		// Configuraciones
		cfgGroup := v1.Group("/configuraciones", middleware.RequireRole("admin"))
		{
			cfgGroup.POST("", configH.Crear)
			cfgGroup.GET("", configH.Listar)
			cfgGroup.GET("/:clave", configH.ObtenerPorClave)
			cfgGroup.PUT("/:clave", configH.Actualizar)
		}
	}

	deps := &Deps{
		Dispatcher: dispatcher,
		Handlers: worker.Handlers{
			ReporteCierre: worker.NewReporteCierreWorker(cierreSvc, dispatcher, cfg.PDFStoragePath, cfg.ReportesPara),
			Email:         worker.NewEmailWorker(mailer),
		},
		Alertas:  alertaSvc,
		Limpieza: limpiezaSvc,
	}
	return r, deps
}
