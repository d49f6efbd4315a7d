package handlers

import (
	"net/http"

	"nomina/internal/domain"
	"nomina/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse es el payload de error que consume el frontend.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, mensaje string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{Error: mensaje, Code: code, Details: details}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    mensaje,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError traduce la taxonomía de errores de dominio a HTTP.
// Cualquier error no tipado se responde como 500 sin filtrar el detalle.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "ocurrió un error interno", nil)
	}
}
