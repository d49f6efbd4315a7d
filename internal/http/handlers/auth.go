package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nomina/internal/config"
	"nomina/internal/domain"
	"nomina/internal/domain/models"
	"nomina/internal/http/middleware"
	"nomina/internal/repositories"
	"nomina/internal/services"
	"nomina/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func firmarToken(u models.Usuario, ttl time.Duration, tipo string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"rol":      u.Rol,
		"type":     tipo,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(config.Current.JWTSecret))
}

// POST /api/usuarios/login/
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	login := strings.TrimSpace(req.Username)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}

	repo := repositories.UsuarioRepository{DB: config.DB}
	u, err := repo.GetByLogin(login)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "credenciales inválidas", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	if !u.Activo {
		RespondError(c, http.StatusUnauthorized, "credenciales inválidas", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "credenciales inválidas", nil)
		return
	}

	access, err := firmarToken(u, time.Duration(config.Current.AccessTTLHours)*time.Hour, "access")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo generar el token", err)
		return
	}
	refresh, err := firmarToken(u, time.Duration(config.Current.RefreshTTLHours)*time.Hour, "refresh")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo generar el token", err)
		return
	}

	registrarLoginAuditoria(c, u)

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
		"usuario": u,
	})
}

func registrarLoginAuditoria(c *gin.Context, u models.Usuario) {
	repo := repositories.AuditoriaRepository{DB: config.DB}
	l := models.LogAuditoria{
		UsuarioID:       &u.ID,
		UsuarioUsername: u.Username,
		Modelo:          "usuario",
		ObjetoID:        u.ID,
		Accion:          models.AccionLogin,
		Detalle:         "inicio de sesión",
	}
	if err := repo.Registrar(l); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auditoria", "registrar_error", err.Error())
	}
}

// GET /api/usuarios/me/ y /api/usuarios/profile/
func Me(c *gin.Context) {
	repo := repositories.UsuarioRepository{DB: config.DB}
	u, err := repo.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type forgotRequest struct {
	Email string `json:"email"`
}

// POST /api/usuarios/forgot-password/
// Siempre responde 200 para no revelar qué correos existen.
func ForgotPassword(c *gin.Context) {
	var req forgotRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	respuesta := gin.H{"message": "si el correo existe, se envió un enlace de recuperación"}

	repo := repositories.UsuarioRepository{DB: config.DB}
	u, err := repo.GetByLogin(strings.TrimSpace(req.Email))
	if err != nil {
		c.JSON(http.StatusOK, respuesta)
		return
	}

	token := uuid.NewString()
	if err := repo.CrearReset(u.ID, token, time.Now().Add(time.Hour)); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "reset_error", err.Error())
		c.JSON(http.StatusOK, respuesta)
		return
	}

	enlace := fmt.Sprintf("%s/reset-password/%d/%s", strings.TrimRight(config.Current.FrontendURL, "/"), u.ID, token)
	mailer := services.NewMailer(config.Current)
	cuerpo := fmt.Sprintf("Para restablecer su contraseña ingrese a:\n\n%s\n\nEl enlace vence en una hora.", enlace)
	if err := mailer.Send(u.Email, "Recuperación de contraseña", cuerpo, nil, ""); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "mail_error", err.Error())
	}

	c.JSON(http.StatusOK, respuesta)
}

type resetRequest struct {
	Password string `json:"password"`
}

// POST /api/usuarios/reset-password/:uid/:token/
func ResetPassword(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
	if err != nil || uid <= 0 {
		RespondError(c, http.StatusBadRequest, "enlace inválido", nil)
		return
	}
	token := strings.TrimSpace(c.Param("token"))

	var req resetRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "la contraseña debe tener al menos 6 caracteres", nil)
		return
	}

	repo := repositories.UsuarioRepository{DB: config.DB}
	reset, err := repo.GetResetVigente(uid, token)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "el enlace es inválido o ya venció", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "no se pudo procesar la contraseña", err)
		return
	}
	if err := repo.UpdatePassword(uid, string(hash)); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.MarcarResetUsado(reset.ID); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "reset_usado_error", err.Error())
	}

	c.JSON(http.StatusOK, gin.H{"message": "contraseña actualizada"})
}
