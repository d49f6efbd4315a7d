package handlers

import (
	"fmt"
	"io"
	"net/http"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	"nomina/internal/http/middleware"
	"nomina/internal/repositories"
	"nomina/internal/services"

	"github.com/gin-gonic/gin"
)

func nominaService(c *gin.Context) services.NominaService {
	return services.NominaService{
		Empleados:     repositories.EmpleadoRepository{DB: config.DB},
		Asignaciones:  repositories.AsignacionRepository{DB: config.DB},
		Liquidaciones: repositories.LiquidacionRepository{DB: config.DB},
		Params:        services.ParametrosVigentes(config.Current.SalarioMinimo),
		RequestID:     middleware.GetRequestID(c),
	}
}

// GET /api/nomina_cal/liquidaciones/
func GetLiquidaciones(c *gin.Context) {
	repo := repositories.LiquidacionRepository{DB: config.DB}
	liquidaciones, count, err := repo.List(ParseListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, liquidaciones, count)
}

// GET /api/nomina_cal/liquidaciones/:id/
func GetLiquidacionByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	l, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	detalles, err := repo.GetDetalles(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liquidacion": l, "detalles": detalles})
}

type liquidacionInput struct {
	EmpleadoID int64 `json:"empleado"`
	Mes        int   `json:"mes"`
	Anio       int   `json:"anio"`
}

// POST /api/nomina_cal/liquidaciones/
// Crea el período vacío; los totales quedan en cero hasta calcular.
func CreateLiquidacion(c *gin.Context) {
	var input liquidacionInput
	if !BindJSONOrError(c, &input) {
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	l, err := repo.Create(models.Liquidacion{
		EmpleadoID: input.EmpleadoID,
		Mes:        input.Mes,
		Anio:       input.Anio,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", l.ID, models.AccionCrear,
		fmt.Sprintf("liquidación %02d/%d de %s", l.Mes, l.Anio, l.EmpleadoNombre))
	c.JSON(http.StatusCreated, l)
}

// PUT /api/nomina_cal/liquidaciones/:id/
func UpdateLiquidacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var input liquidacionInput
	if !BindJSONOrError(c, &input) {
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	l, err := repo.Update(id, models.Liquidacion{
		EmpleadoID: input.EmpleadoID,
		Mes:        input.Mes,
		Anio:       input.Anio,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", id, models.AccionEditar,
		fmt.Sprintf("liquidación movida a %02d/%d", l.Mes, l.Anio))
	c.JSON(http.StatusOK, l)
}

// PATCH /api/nomina_cal/liquidaciones/:id/
func PatchLiquidacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "cuerpo vacío", err)
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	l, err := repo.Patch(id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", id, models.AccionEditar, "liquidación editada parcialmente")
	c.JSON(http.StatusOK, l)
}

// DELETE /api/nomina_cal/liquidaciones/:id/
func DeleteLiquidacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", id, models.AccionEliminar, "liquidación eliminada")
	c.JSON(http.StatusOK, gin.H{"message": "liquidación eliminada"})
}

// POST /api/nomina_cal/liquidaciones/:id/calcular/
func CalcularLiquidacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	res, err := nominaService(c).Calcular(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", id, models.AccionCalcular,
		fmt.Sprintf("cálculo ejecutado, neto %d", res.Total))
	c.JSON(http.StatusOK, res)
}

// POST /api/nomina_cal/liquidaciones/:id/cerrar/
func CerrarLiquidacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.LiquidacionRepository{DB: config.DB}
	l, err := repo.Cerrar(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", id, models.AccionCerrar,
		fmt.Sprintf("liquidación %02d/%d cerrada", l.Mes, l.Anio))
	c.JSON(http.StatusOK, l)
}

// POST /api/nomina_cal/liquidaciones/:id/enviar-recibo/
func EnviarRecibo(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	svc := services.ReciboService{
		Liquidaciones: repositories.LiquidacionRepository{DB: config.DB},
		Empleados:     repositories.EmpleadoRepository{DB: config.DB},
		Mailer:        services.NewMailer(config.Current),
		RequestID:     middleware.GetRequestID(c),
	}
	destino, err := svc.EnviarRecibo(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", id, models.AccionCalcular,
		fmt.Sprintf("recibo enviado a %s", destino))
	c.JSON(http.StatusOK, gin.H{"message": "recibo enviado", "destino": destino})
}

// GET /api/nomina_cal/liquidaciones/:id/recibo/
func DescargarRecibo(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	svc := services.ReciboService{
		Liquidaciones: repositories.LiquidacionRepository{DB: config.DB},
		Empleados:     repositories.EmpleadoRepository{DB: config.DB},
		RequestID:     middleware.GetRequestID(c),
	}
	pdfBytes, nombre, err := svc.GenerarRecibo(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondArchivo(c, pdfBytes, nombre, contentTypePDF)
}

// POST /api/nomina_cal/liquidaciones/calcular-todas/
func CalcularTodas(c *gin.Context) {
	mes, anio := ParsePeriodo(c)
	lote, err := nominaService(c).CalcularTodas(mes, anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", 0, models.AccionCalcular,
		fmt.Sprintf("cálculo masivo %02d/%d: %d ok, %d con error", mes, anio, lote.Calculadas, len(lote.Errores)))
	c.JSON(http.StatusOK, lote)
}

type periodoInput struct {
	Mes  int `json:"mes"`
	Anio int `json:"anio"`
}

// POST /api/nomina_cal/calcular-periodo/ (alias recalcular-periodo)
func CalcularPeriodo(c *gin.Context) {
	var input periodoInput
	if !BindJSONOrError(c, &input) {
		return
	}
	lote, err := nominaService(c).CalcularPeriodo(input.Mes, input.Anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "liquidacion", 0, models.AccionCalcular,
		fmt.Sprintf("período %02d/%d procesado: %d ok, %d con error", input.Mes, input.Anio, lote.Calculadas, len(lote.Errores)))
	c.JSON(http.StatusOK, lote)
}

type previewInput struct {
	EmpleadoID int64 `json:"empleado_id"`
	Mes        int   `json:"mes"`
	Anio       int   `json:"anio"`
}

// POST /api/nomina/calcular-nomina/
// Vista previa sin persistir ni consumir asignaciones.
func CalcularNominaPreview(c *gin.Context) {
	var input previewInput
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Mes == 0 || input.Anio == 0 {
		input.Mes, input.Anio = ParsePeriodo(c)
	}
	res, err := nominaService(c).CalcularPreview(input.EmpleadoID, input.Mes, input.Anio)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
