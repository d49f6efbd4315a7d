package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"nomina/internal/config"
	"nomina/internal/domain"
	"nomina/internal/domain/models"
	"nomina/internal/http/middleware"
	"nomina/internal/repositories"
	"nomina/internal/services"

	"github.com/gin-gonic/gin"
)

type marcarInput struct {
	Tipo string `json:"tipo"`
}

// POST /api/asistencia/fichadas/marcar/
func MarcarFichada(c *gin.Context) {
	var input marcarInput
	if !BindJSONOrError(c, &input) {
		return
	}

	svc := services.AsistenciaService{
		Empleados: repositories.EmpleadoRepository{DB: config.DB},
		Fichadas:  repositories.FichadaRepository{DB: config.DB},
		RequestID: middleware.GetRequestID(c),
	}
	f, err := svc.Marcar(middleware.CurrentUserID(c), strings.ToUpper(strings.TrimSpace(input.Tipo)))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "fichada", f.ID, models.AccionMarcar,
		fmt.Sprintf("%s %s %s", f.Tipo, f.Fecha, f.Hora))
	c.JSON(http.StatusCreated, f)
}

// empleadoAlcance devuelve el empleado propio cuando el rol es EMPLEADO;
// cero significa sin restricción.
func empleadoAlcance(c *gin.Context) (int64, error) {
	if middleware.CurrentUserRole(c) != models.RolEmpleado {
		return 0, nil
	}
	repo := repositories.EmpleadoRepository{DB: config.DB}
	emp, err := repo.GetByUsuarioID(middleware.CurrentUserID(c))
	if err != nil {
		if domain.IsNotFound(err) {
			return 0, domain.Invalid("empleado", "el usuario no tiene ficha de empleado")
		}
		return 0, err
	}
	return emp.ID, nil
}

// GET /api/asistencia/fichadas/
func GetFichadas(c *gin.Context) {
	alcance, err := empleadoAlcance(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	repo := repositories.FichadaRepository{DB: config.DB}
	fichadas, count, err := repo.List(ParseListParams(c), alcance)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, fichadas, count)
}

// GET /api/asistencia/asistencias/?mes&anio&empleado
func GetAsistencias(c *gin.Context) {
	alcance, err := empleadoAlcance(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if alcance == 0 {
		alcance = empleadoIDQuery(c)
		if alcance == 0 {
			alcance, _ = strconv.ParseInt(c.Query("empleado"), 10, 64)
		}
	}

	mes, anio := ParsePeriodo(c)
	repo := repositories.FichadaRepository{DB: config.DB}
	asistencias, err := repo.AsistenciasMensuales(mes, anio, alcance)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": asistencias, "count": len(asistencias)})
}

// GET /api/asistencia/exportar-excel/?mes&anio
func AsistenciaExcel(c *gin.Context) {
	alcance, err := empleadoAlcance(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	mes, anio := ParsePeriodo(c)
	contenido, nombre, err := exportService(c).AsistenciaExcel(mes, anio, alcance)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, contenido, nombre, contentTypeExcel)
}

// GET /api/asistencia/exportar-pdf/?mes&anio
func AsistenciaPDF(c *gin.Context) {
	alcance, err := empleadoAlcance(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	mes, anio := ParsePeriodo(c)
	contenido, nombre, err := exportService(c).AsistenciaPDF(mes, anio, alcance)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, contenido, nombre, contentTypePDF)
}
