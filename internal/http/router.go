package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	h "nomina/internal/http/handlers"
	"nomina/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	// El frontend manda las rutas con barra final al estilo DRF.
	r.RedirectTrailingSlash = true

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth([]byte(env.JWTSecret))
	soloAdmin := middleware.RequireRoles(models.RolAdmin)
	rrhh := middleware.RequireRoles(models.RolAdmin, models.RolGerente, models.RolAsistente)
	gestion := middleware.RequireRoles(models.RolAdmin, models.RolGerente)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Usuarios y autenticación
		usuarios := api.Group("/usuarios")
		usuarios.POST("/login", h.Login)
		usuarios.POST("/forgot-password", h.ForgotPassword)
		usuarios.POST("/reset-password/:uid/:token", h.ResetPassword)
		usuarios.GET("/me", auth, h.Me)
		usuarios.GET("/profile", auth, h.Me)
		usuarios.GET("", auth, soloAdmin, h.GetUsuarios)
		usuarios.POST("", auth, soloAdmin, h.CreateUsuario)
		usuarios.GET("/:id", auth, soloAdmin, h.GetUsuarioByID)
		usuarios.PUT("/:id", auth, soloAdmin, h.UpdateUsuario)
		usuarios.DELETE("/:id", auth, soloAdmin, h.DeleteUsuario)

		// Empleados
		empleados := api.Group("/empleados", auth, rrhh)
		empleados.GET("", h.GetEmpleados)
		empleados.POST("", h.CreateEmpleado)
		empleados.GET("/:id", h.GetEmpleadoByID)
		empleados.PUT("/:id", h.UpdateEmpleado)
		empleados.PATCH("/:id", h.PatchEmpleado)
		empleados.DELETE("/:id", h.DeleteEmpleado)

		// Núcleo de nómina
		nominaCal := api.Group("/nomina_cal", auth)
		{
			conceptos := nominaCal.Group("/conceptos", gestion)
			conceptos.GET("", h.GetConceptos)
			conceptos.POST("", h.CreateConcepto)
			conceptos.GET("/:id", h.GetConceptoByID)
			conceptos.PUT("/:id", h.UpdateConcepto)
			conceptos.DELETE("/:id", h.DeleteConcepto)

			asignaciones := nominaCal.Group("/asignaciones", rrhh)
			asignaciones.GET("", h.GetAsignaciones)
			asignaciones.POST("", h.CreateAsignacion)
			asignaciones.GET("/:id", h.GetAsignacionByID)
			asignaciones.PUT("/:id", h.UpdateAsignacion)
			asignaciones.DELETE("/:id", h.DeleteAsignacion)

			// vista de retenciones: el mismo recurso acotado a débitos
			retenciones := nominaCal.Group("/retenciones", rrhh)
			retenciones.GET("", h.GetRetenciones)
			retenciones.POST("", h.CreateAsignacion)
			retenciones.GET("/:id", h.GetAsignacionByID)
			retenciones.PUT("/:id", h.UpdateAsignacion)
			retenciones.DELETE("/:id", h.DeleteAsignacion)

			liquidaciones := nominaCal.Group("/liquidaciones", rrhh)
			liquidaciones.GET("", h.GetLiquidaciones)
			liquidaciones.POST("", h.CreateLiquidacion)
			liquidaciones.POST("/calcular-todas", h.CalcularTodas)
			liquidaciones.GET("/:id", h.GetLiquidacionByID)
			liquidaciones.PUT("/:id", h.UpdateLiquidacion)
			liquidaciones.PATCH("/:id", h.PatchLiquidacion)
			liquidaciones.DELETE("/:id", h.DeleteLiquidacion)
			liquidaciones.POST("/:id/calcular", h.CalcularLiquidacion)
			liquidaciones.POST("/:id/cerrar", h.CerrarLiquidacion)
			liquidaciones.POST("/:id/enviar-recibo", h.EnviarRecibo)
			liquidaciones.GET("/:id/recibo", h.DescargarRecibo)

			nominaCal.POST("/calcular-todas", rrhh, h.CalcularTodas)
			nominaCal.POST("/calcular-periodo", rrhh, h.CalcularPeriodo)
			nominaCal.POST("/recalcular-periodo", rrhh, h.CalcularPeriodo)

			// Reportes
			nominaCal.GET("/reporte-general", rrhh, h.ReporteGeneral)
			nominaCal.GET("/analytics/kpis", rrhh, h.AnalyticsKPIs)
			reportes := nominaCal.Group("/reportes", rrhh)
			reportes.GET("/excel", h.ReporteExcel)
			reportes.GET("/pdf", h.ReportePDF)
			reportes.GET("/avanzados", h.ReporteAvanzado)
			reportes.GET("/avanzados/excel", h.ReporteAvanzadoExcel)
			reportes.GET("/avanzados/pdf", h.ReporteAvanzadoPDF)
			// rutas históricas que el cliente viejo todavía llama
			nominaCal.GET("/export/excel", rrhh, h.ReporteExcel)
			nominaCal.GET("/export/pdf", rrhh, h.ReportePDF)

			// Dashboards por rol
			dashboard := nominaCal.Group("/dashboard")
			dashboard.GET("/admin", soloAdmin, h.DashboardAdmin)
			dashboard.GET("/gerente", middleware.RequireRoles(models.RolAdmin, models.RolGerente), h.DashboardGerente)
			dashboard.GET("/asistente", middleware.RequireRoles(models.RolAdmin, models.RolAsistente), h.DashboardAsistente)
			dashboard.GET("/empleado", h.DashboardEmpleado)
		}

		// Vista previa de cálculo sin persistir
		api.POST("/nomina/calcular-nomina", auth, rrhh, h.CalcularNominaPreview)

		// Asistencia
		asistencia := api.Group("/asistencia", auth)
		asistencia.POST("/fichadas/marcar", h.MarcarFichada)
		asistencia.GET("/fichadas", h.GetFichadas)
		asistencia.GET("/asistencias", h.GetAsistencias)
		asistencia.GET("/exportar-excel", h.AsistenciaExcel)
		asistencia.GET("/exportar-pdf", h.AsistenciaPDF)

		// Auditoría
		api.GET("/auditoria/logs", auth, gestion, h.GetAuditoriaLogs)
	}

	h.SetRouter(r)
	return r
}
