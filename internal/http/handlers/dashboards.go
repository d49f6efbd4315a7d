package handlers

import (
	"net/http"

	"nomina/internal/config"
	"nomina/internal/domain"
	"nomina/internal/http/middleware"
	"nomina/internal/repositories"

	"github.com/gin-gonic/gin"
)

func contarTabla(tabla, where string) (int, error) {
	query := "SELECT COUNT(*) FROM " + tabla
	if where != "" {
		query += " WHERE " + where
	}
	var count int
	err := config.DB.QueryRow(query).Scan(&count)
	return count, err
}

// resumenPeriodoActual arma los números comunes a los paneles de RRHH.
func resumenPeriodoActual(c *gin.Context) (gin.H, bool) {
	mes, anio := ParsePeriodo(c)

	empleadosActivos, err := contarTabla("empleados", "activo = 1")
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	resumen, err := repo.ResumenPeriodo(mes, anio)
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}

	return gin.H{
		"mes":               mes,
		"anio":              anio,
		"empleados_activos": empleadosActivos,
		"liquidaciones":     resumen.Cantidad,
		"cerradas":          resumen.Cerradas,
		"total_ingresos":    resumen.TotalIngresos,
		"total_descuentos":  resumen.TotalDescuentos,
		"total_neto":        resumen.TotalNeto,
	}, true
}

// GET /api/nomina_cal/dashboard/admin/
func DashboardAdmin(c *gin.Context) {
	base, ok := resumenPeriodoActual(c)
	if !ok {
		return
	}
	usuarios, err := contarTabla("usuarios", "")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	conceptos, err := contarTabla("conceptos", "")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	base["usuarios"] = usuarios
	base["conceptos"] = conceptos
	c.JSON(http.StatusOK, base)
}

// GET /api/nomina_cal/dashboard/gerente/
func DashboardGerente(c *gin.Context) {
	base, ok := resumenPeriodoActual(c)
	if !ok {
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	_, anio := ParsePeriodo(c)
	evolucion, err := repo.EvolucionAnual(anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	base["evolucion"] = evolucion
	c.JSON(http.StatusOK, base)
}

// GET /api/nomina_cal/dashboard/asistente/
func DashboardAsistente(c *gin.Context) {
	base, ok := resumenPeriodoActual(c)
	if !ok {
		return
	}
	asignaciones, err := contarTabla("asignaciones", "activo = 1")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	base["asignaciones_activas"] = asignaciones
	c.JSON(http.StatusOK, base)
}

// GET /api/nomina_cal/dashboard/empleado/
// Acotado al empleado vinculado al usuario autenticado.
func DashboardEmpleado(c *gin.Context) {
	empleados := repositories.EmpleadoRepository{DB: config.DB}
	emp, err := empleados.GetByUsuarioID(middleware.CurrentUserID(c))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, domain.Invalid("empleado", "el usuario no tiene ficha de empleado"))
			return
		}
		RespondDomainError(c, err)
		return
	}

	liquidaciones := repositories.LiquidacionRepository{DB: config.DB}
	fichadas := repositories.FichadaRepository{DB: config.DB}

	out := gin.H{"empleado": emp}

	if ultima, err := liquidaciones.UltimaDeEmpleado(emp.ID); err == nil {
		out["ultima_liquidacion"] = ultima
	}
	ultimas, err := fichadas.UltimasDeEmpleado(emp.ID, 10)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out["ultimas_fichadas"] = ultimas

	c.JSON(http.StatusOK, out)
}
