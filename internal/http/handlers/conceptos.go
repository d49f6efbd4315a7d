package handlers

import (
	"fmt"
	"net/http"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/nomina_cal/conceptos/
func GetConceptos(c *gin.Context) {
	repo := repositories.ConceptoRepository{DB: config.DB}
	conceptos, count, err := repo.List(ParseListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, conceptos, count)
}

// GET /api/nomina_cal/conceptos/:id/
func GetConceptoByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.ConceptoRepository{DB: config.DB}
	concepto, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, concepto)
}

// POST /api/nomina_cal/conceptos/
func CreateConcepto(c *gin.Context) {
	var input models.Concepto
	if !BindJSONOrError(c, &input) {
		return
	}
	repo := repositories.ConceptoRepository{DB: config.DB}
	concepto, err := repo.Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "concepto", concepto.ID, models.AccionCrear,
		fmt.Sprintf("concepto %q creado", concepto.Descripcion))
	c.JSON(http.StatusCreated, concepto)
}

// PUT /api/nomina_cal/conceptos/:id/
func UpdateConcepto(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var input models.Concepto
	if !BindJSONOrError(c, &input) {
		return
	}
	repo := repositories.ConceptoRepository{DB: config.DB}
	concepto, err := repo.Update(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "concepto", id, models.AccionEditar,
		fmt.Sprintf("concepto %q editado", concepto.Descripcion))
	c.JSON(http.StatusOK, concepto)
}

// DELETE /api/nomina_cal/conceptos/:id/
func DeleteConcepto(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.ConceptoRepository{DB: config.DB}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "concepto", id, models.AccionEliminar, "concepto eliminado")
	c.JSON(http.StatusOK, gin.H{"message": "concepto eliminado"})
}
