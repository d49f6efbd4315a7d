package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nomina/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func routerConRol(rol string, permitidos ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/recurso", func(c *gin.Context) {
		if rol != "" {
			c.Set(userRoleKey, models.NormalizarRol(rol))
		}
		c.Next()
	}, RequireRoles(permitidos...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func statusPara(t *testing.T, rol string, permitidos ...string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	w := httptest.NewRecorder()
	routerConRol(rol, permitidos...).ServeHTTP(w, req)
	return w.Code
}

func TestRequireRolesPermitido(t *testing.T) {
	if code := statusPara(t, models.RolAdmin, models.RolAdmin); code != http.StatusOK {
		t.Fatalf("admin should pass, got %d", code)
	}
}

func TestRequireRolesProhibido(t *testing.T) {
	if code := statusPara(t, models.RolEmpleado, models.RolAdmin, models.RolGerente); code != http.StatusForbidden {
		t.Fatalf("empleado should get 403, got %d", code)
	}
}

func TestRequireRolesSinRol(t *testing.T) {
	if code := statusPara(t, "", models.RolAdmin); code != http.StatusUnauthorized {
		t.Fatalf("missing role should get 401, got %d", code)
	}
}

func TestRequireRolesSinonimosHistoricos(t *testing.T) {
	// el token viejo dice GERENTE; la ruta exige GERENTE_RRHH
	if code := statusPara(t, "GERENTE", models.RolGerente); code != http.StatusOK {
		t.Fatalf("legacy GERENTE should map to GERENTE_RRHH, got %d", code)
	}
	// y la lista de permitidos también acepta la forma corta
	if code := statusPara(t, models.RolAsistente, "ASISTENTE"); code != http.StatusOK {
		t.Fatalf("allowed list should normalize ASISTENTE, got %d", code)
	}
}
