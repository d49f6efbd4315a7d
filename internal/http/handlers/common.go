package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	"nomina/internal/http/middleware"
	"nomina/internal/repositories"
	"nomina/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "cuerpo vacío", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload inválido", err)
		return false
	}
	return true
}

// ParseIDParam lee :id de la ruta; responde 400 y devuelve false si no es
// numérico.
func ParseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id inválido", nil)
		return 0, false
	}
	return id, true
}

// paramsReservados son claves de query que no son filtros de columna.
var paramsReservados = map[string]bool{
	"page":      true,
	"page_size": true,
	"search":    true,
	"q":         true,
	"ordering":  true,
	"format":    true,
}

// ParseListParams normaliza los parámetros de listado al estilo del cliente:
// page, search, ordering y el resto de la query como filtros exactos.
func ParseListParams(c *gin.Context) repositories.ListParams {
	p := repositories.ListParams{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: strings.TrimSpace(c.Query("ordering")),
		Filters:  map[string]string{},
	}
	if p.Search == "" {
		p.Search = strings.TrimSpace(c.Query("q"))
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		p.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil {
		p.PageSize = size
	}
	for key, values := range c.Request.URL.Query() {
		if paramsReservados[key] || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[0]); v != "" {
			p.Filters[key] = v
		}
	}
	return p
}

// RespondPage responde el sobre de paginación que consume el frontend.
func RespondPage(c *gin.Context, results any, count int) {
	c.JSON(http.StatusOK, gin.H{"results": results, "count": count})
}

// ParsePeriodo lee mes y anio de la query con el período corriente como
// defecto.
func ParsePeriodo(c *gin.Context) (int, int) {
	mes, anio := utils.PeriodoActual()
	if v, err := strconv.Atoi(c.Query("mes")); err == nil && v >= 1 && v <= 12 {
		mes = v
	}
	if v, err := strconv.Atoi(c.Query("anio")); err == nil && v > 0 {
		anio = v
	}
	return mes, anio
}

// RespondArchivo entrega un binario descargable.
func RespondArchivo(c *gin.Context, contenido []byte, nombre, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, contentType, contenido)
}

const (
	contentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF   = "application/pdf"
)

// registrarAuditoria deja el rastro de la operación. Un fallo de auditoría
// no corta la respuesta; solo queda en el log.
func registrarAuditoria(c *gin.Context, modelo string, objetoID int64, accion, detalle string) {
	userID := middleware.CurrentUserID(c)
	l := models.LogAuditoria{
		UsuarioUsername: middleware.CurrentUsername(c),
		Modelo:          modelo,
		ObjetoID:        objetoID,
		Accion:          accion,
		Detalle:         detalle,
	}
	if userID > 0 {
		l.UsuarioID = &userID
	}
	repo := repositories.AuditoriaRepository{DB: config.DB}
	if err := repo.Registrar(l); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auditoria", "registrar_error", err.Error())
	}
}
