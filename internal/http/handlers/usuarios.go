package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"nomina/internal/config"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type usuarioInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Activo   *bool  `json:"activo"`
	Password string `json:"password"`
}

// GET /api/usuarios/
func GetUsuarios(c *gin.Context) {
	repo := repositories.UsuarioRepository{DB: config.DB}
	usuarios, count, err := repo.List(ParseListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, usuarios, count)
}

// GET /api/usuarios/:id/
func GetUsuarioByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.UsuarioRepository{DB: config.DB}
	u, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/usuarios/
func CreateUsuario(c *gin.Context) {
	var input usuarioInput
	if !BindJSONOrError(c, &input) {
		return
	}
	if len(input.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "la contraseña debe tener al menos 6 caracteres", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo procesar la contraseña", err)
		return
	}

	activo := true
	if input.Activo != nil {
		activo = *input.Activo
	}
	repo := repositories.UsuarioRepository{DB: config.DB}
	u, err := repo.Create(models.Usuario{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		Rol:          input.Rol,
		Activo:       activo,
		PasswordHash: string(hash),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	registrarAuditoria(c, "usuario", u.ID, models.AccionCrear, fmt.Sprintf("usuario %s creado", u.Username))
	c.JSON(http.StatusCreated, u)
}

// PUT /api/usuarios/:id/
func UpdateUsuario(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var input usuarioInput
	if !BindJSONOrError(c, &input) {
		return
	}

	repo := repositories.UsuarioRepository{DB: config.DB}
	existente, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	activo := existente.Activo
	if input.Activo != nil {
		activo = *input.Activo
	}
	u, err := repo.Update(id, models.Usuario{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Rol:      input.Rol,
		Activo:   activo,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// cambio de contraseña opcional en la misma edición
	if input.Password != "" {
		if len(input.Password) < 6 {
			RespondError(c, http.StatusBadRequest, "la contraseña debe tener al menos 6 caracteres", nil)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "no se pudo procesar la contraseña", err)
			return
		}
		if err := repo.UpdatePassword(id, string(hash)); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	registrarAuditoria(c, "usuario", id, models.AccionEditar, fmt.Sprintf("usuario %s editado", u.Username))
	c.JSON(http.StatusOK, u)
}

// DELETE /api/usuarios/:id/
func DeleteUsuario(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	repo := repositories.UsuarioRepository{DB: config.DB}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	registrarAuditoria(c, "usuario", id, models.AccionEliminar, "usuario eliminado")
	c.JSON(http.StatusOK, gin.H{"message": "usuario eliminado"})
}
