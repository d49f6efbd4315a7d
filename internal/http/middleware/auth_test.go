package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nomina/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secretTest = []byte("secreto-de-test")

func tokenFirmado(t *testing.T, claims jwt.MapClaims, metodo jwt.SigningMethod, secret []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(metodo, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func routerConAuth() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", RequireAuth(secretTest), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  CurrentUserID(c),
			"rol":      CurrentUserRole(c),
			"username": CurrentUsername(c),
		})
	})
	return r
}

func hacerRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthSinToken(t *testing.T) {
	w := hacerRequest(routerConAuth(), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthTokenValido(t *testing.T) {
	token := tokenFirmado(t, jwt.MapClaims{
		"user_id":  float64(7),
		"rol":      "GERENTE",
		"username": "ana",
		"type":     "access",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, secretTest)

	w := hacerRequest(routerConAuth(), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	// el rol corto histórico queda normalizado
	if body := w.Body.String(); !strings.Contains(body, models.RolGerente) {
		t.Fatalf("role not normalized in context: %s", body)
	}
}

func TestRequireAuthTokenExpirado(t *testing.T) {
	token := tokenFirmado(t, jwt.MapClaims{
		"user_id": float64(7),
		"rol":     "ADMIN",
		"type":    "access",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}, jwt.SigningMethodHS256, secretTest)

	w := hacerRequest(routerConAuth(), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestRequireAuthFirmaAjena(t *testing.T) {
	token := tokenFirmado(t, jwt.MapClaims{
		"user_id": float64(7),
		"rol":     "ADMIN",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, []byte("otro-secreto"))

	w := hacerRequest(routerConAuth(), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signature, got %d", w.Code)
	}
}

func TestRequireAuthSinUserID(t *testing.T) {
	token := tokenFirmado(t, jwt.MapClaims{
		"rol":  "ADMIN",
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, secretTest)

	w := hacerRequest(routerConAuth(), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user_id claim, got %d", w.Code)
	}
}

func TestRequireAuthRechazaRefresh(t *testing.T) {
	// un refresh vigente no alcanza para entrar a rutas protegidas
	token := tokenFirmado(t, jwt.MapClaims{
		"user_id": float64(7),
		"rol":     "ADMIN",
		"type":    "refresh",
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}, jwt.SigningMethodHS256, secretTest)

	w := hacerRequest(routerConAuth(), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token, got %d", w.Code)
	}
}
