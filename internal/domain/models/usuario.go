package models

import "strings"

// Roles reconocidos por el sistema. El frontend histórico envía a veces
// las formas cortas GERENTE/ASISTENTE; se normalizan siempre al entrar.
const (
	RolAdmin     = "ADMIN"
	RolGerente   = "GERENTE_RRHH"
	RolAsistente = "ASISTENTE_RRHH"
	RolEmpleado  = "EMPLEADO"
)

// NormalizarRol lleva cualquier variante histórica al vocabulario fijo.
// Devuelve cadena vacía si el rol no es reconocido.
func NormalizarRol(rol string) string {
	switch strings.ToUpper(strings.TrimSpace(rol)) {
	case "ADMIN", "ADMINISTRADOR":
		return RolAdmin
	case "GERENTE", "GERENTE_RRHH":
		return RolGerente
	case "ASISTENTE", "ASISTENTE_RRHH":
		return RolAsistente
	case "EMPLEADO", "USER", "USUARIO":
		return RolEmpleado
	default:
		return ""
	}
}

type Usuario struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Activo   bool   `json:"activo"`
	// PasswordHash nunca se serializa hacia el cliente.
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// PasswordReset es un token de un solo uso para recuperar contraseña.
type PasswordReset struct {
	ID        int64
	UsuarioID int64
	Token     string
	ExpiresAt string
	Used      bool
}
