package handlers

import (
	"fmt"
	"io"
	"net/http"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/empleados/
func GetEmpleados(c *gin.Context) {
	repo := repositories.EmpleadoRepository{DB: config.DB}
	empleados, count, err := repo.List(ParseListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, empleados, count)
}

// GET /api/empleados/:id/
func GetEmpleadoByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.EmpleadoRepository{DB: config.DB}
	e, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// POST /api/empleados/
func CreateEmpleado(c *gin.Context) {
	var input models.Empleado
	if !BindJSONOrError(c, &input) {
		return
	}
	repo := repositories.EmpleadoRepository{DB: config.DB}
	e, err := repo.Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "empleado", e.ID, models.AccionCrear,
		fmt.Sprintf("empleado %s %s creado", e.Nombre, e.Apellido))
	c.JSON(http.StatusCreated, e)
}

// PUT /api/empleados/:id/
func UpdateEmpleado(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var input models.Empleado
	if !BindJSONOrError(c, &input) {
		return
	}
	repo := repositories.EmpleadoRepository{DB: config.DB}
	e, err := repo.Update(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "empleado", id, models.AccionEditar,
		fmt.Sprintf("empleado %s %s editado", e.Nombre, e.Apellido))
	c.JSON(http.StatusOK, e)
}

// PATCH /api/empleados/:id/
// Actualización parcial por presencia de clave: solo pisa los campos que
// vienen en el cuerpo.
func PatchEmpleado(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "cuerpo vacío", err)
		return
	}
	repo := repositories.EmpleadoRepository{DB: config.DB}
	e, err := repo.Patch(id, raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "empleado", id, models.AccionEditar,
		fmt.Sprintf("empleado %s %s editado parcialmente", e.Nombre, e.Apellido))
	c.JSON(http.StatusOK, e)
}

// DELETE /api/empleados/:id/
func DeleteEmpleado(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.EmpleadoRepository{DB: config.DB}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "empleado", id, models.AccionEliminar, "empleado eliminado")
	c.JSON(http.StatusOK, gin.H{"message": "empleado eliminado"})
}
