package middleware

import (
	"net/http"
	"strings"

	"nomina/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	usernameKey = "username"
)

// RequireAuth validates the bearer token and loads user identity into the
// context. A clean 401 matters: the frontend reacts to it by clearing the
// stored token and redirecting to /login.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token requerido"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido o expirado"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido o expirado"})
			return
		}

		// un refresh no sirve como credencial de acceso
		if tipo, _ := claims["type"].(string); tipo != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido o expirado"})
			return
		}

		userID, _ := claims["user_id"].(float64)
		rol, _ := claims["rol"].(string)
		username, _ := claims["username"].(string)
		if userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido o expirado"})
			return
		}

		c.Set(userIDKey, int64(userID))
		c.Set(userRoleKey, models.NormalizarRol(rol))
		c.Set(usernameKey, username)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id or 0.
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// CurrentUserRole returns the normalized role of the authenticated user.
func CurrentUserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}

// CurrentUsername returns the username carried in the token.
func CurrentUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
