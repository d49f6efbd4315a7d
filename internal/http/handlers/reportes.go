package handlers

import (
	"net/http"
	"strconv"

	"nomina/internal/config"
	"nomina/internal/http/middleware"
	"nomina/internal/repositories"
	"nomina/internal/services"

	"github.com/gin-gonic/gin"
)

func reportesService(c *gin.Context) services.ReportesService {
	return services.ReportesService{
		Liquidaciones: repositories.LiquidacionRepository{DB: config.DB},
		Empleados:     repositories.EmpleadoRepository{DB: config.DB},
		RequestID:     middleware.GetRequestID(c),
	}
}

func exportService(c *gin.Context) services.ExportService {
	return services.ExportService{
		Liquidaciones: repositories.LiquidacionRepository{DB: config.DB},
		Fichadas:      repositories.FichadaRepository{DB: config.DB},
		Reportes:      reportesService(c),
		RequestID:     middleware.GetRequestID(c),
	}
}

func empleadoIDQuery(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Query("empleado_id"), 10, 64)
	return id
}

// GET /api/nomina_cal/reporte-general/?mes&anio
func ReporteGeneral(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	reporte, err := reportesService(c).General(mes, anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporte)
}

// GET /api/nomina_cal/analytics/kpis/?mes=YYYY-MM
func AnalyticsKPIs(c *gin.Context) {
	out, err := reportesService(c).KPIs(c.Query("mes"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/nomina_cal/reportes/avanzados/?mes&anio&empleado_id
func ReporteAvanzado(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	filas, err := reportesService(c).Avanzado(mes, anio, empleadoIDQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": filas, "count": len(filas)})
}

// GET /api/nomina_cal/reportes/excel/?mes&anio (alias /export/excel/)
func ReporteExcel(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	contenido, nombre, err := exportService(c).NominaExcel(mes, anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, contenido, nombre, contentTypeExcel)
}

// GET /api/nomina_cal/reportes/pdf/?mes&anio (alias /export/pdf/)
func ReportePDF(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	contenido, nombre, err := exportService(c).NominaPDF(mes, anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, contenido, nombre, contentTypePDF)
}

// GET /api/nomina_cal/reportes/avanzados/excel/?mes&anio&empleado_id
func ReporteAvanzadoExcel(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	contenido, nombre, err := exportService(c).AvanzadoExcel(mes, anio, empleadoIDQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, contenido, nombre, contentTypeExcel)
}

// GET /api/nomina_cal/reportes/avanzados/pdf/?mes&anio&empleado_id
func ReporteAvanzadoPDF(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	contenido, nombre, err := exportService(c).AvanzadoPDF(mes, anio, empleadoIDQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, contenido, nombre, contentTypePDF)
}
