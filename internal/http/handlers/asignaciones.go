package handlers

import (
	"fmt"
	"net/http"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/nomina_cal/asignaciones/
func GetAsignaciones(c *gin.Context) {
	listAsignaciones(c, false)
}

// GET /api/nomina_cal/retenciones/
// Mismo recurso acotado a conceptos de débito.
func GetRetenciones(c *gin.Context) {
	listAsignaciones(c, true)
}

func listAsignaciones(c *gin.Context, soloDebitos bool) {
	repo := repositories.AsignacionRepository{DB: config.DB}
	asignaciones, count, err := repo.List(ParseListParams(c), soloDebitos)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, asignaciones, count)
}

// GET /api/nomina_cal/asignaciones/:id/
func GetAsignacionByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.AsignacionRepository{DB: config.DB}
	a, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type asignacionInput struct {
	EmpleadoID int64 `json:"empleado"`
	ConceptoID int64 `json:"concepto"`
	Monto      int64 `json:"monto"`
	Activo     *bool `json:"activo"`
}

// POST /api/nomina_cal/asignaciones/
func CreateAsignacion(c *gin.Context) {
	var input asignacionInput
	if !BindJSONOrError(c, &input) {
		return
	}
	activo := true
	if input.Activo != nil {
		activo = *input.Activo
	}
	repo := repositories.AsignacionRepository{DB: config.DB}
	a, err := repo.Create(models.Asignacion{
		EmpleadoID: input.EmpleadoID,
		ConceptoID: input.ConceptoID,
		Monto:      input.Monto,
		Activo:     activo,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "asignacion", a.ID, models.AccionCrear,
		fmt.Sprintf("asignación %q a %s", a.ConceptoDescripcion, a.EmpleadoNombre))
	c.JSON(http.StatusCreated, a)
}

// PUT /api/nomina_cal/asignaciones/:id/
func UpdateAsignacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var input asignacionInput
	if !BindJSONOrError(c, &input) {
		return
	}
	activo := true
	if input.Activo != nil {
		activo = *input.Activo
	}
	repo := repositories.AsignacionRepository{DB: config.DB}
	a, err := repo.Update(id, models.Asignacion{
		EmpleadoID: input.EmpleadoID,
		ConceptoID: input.ConceptoID,
		Monto:      input.Monto,
		Activo:     activo,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "asignacion", id, models.AccionEditar,
		fmt.Sprintf("asignación %q editada", a.ConceptoDescripcion))
	c.JSON(http.StatusOK, a)
}

// DELETE /api/nomina_cal/asignaciones/:id/
func DeleteAsignacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.AsignacionRepository{DB: config.DB}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "asignacion", id, models.AccionEliminar, "asignación eliminada")
	c.JSON(http.StatusOK, gin.H{"message": "asignación eliminada"})
}
