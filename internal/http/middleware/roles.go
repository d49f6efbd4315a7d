package middleware

import (
	"net/http"

	"nomina/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles permite el acceso solo a los roles listados. Debe montarse
// después de RequireAuth, que deja el rol normalizado en el contexto.
//
// Ejemplo:
//
//	g.GET("/empleados", RequireRoles(models.RolAdmin, models.RolGerente), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		if n := models.NormalizarRol(r); n != "" {
			allowed[n] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		rol := CurrentUserRole(c)
		if rol == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "no autorizado: rol no presente en el contexto",
			})
			return
		}

		if _, ok := allowed[rol]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "prohibido: el rol no tiene acceso a este recurso",
			})
			return
		}

		c.Next()
	}
}
