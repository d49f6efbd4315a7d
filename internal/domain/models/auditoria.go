package models

// Acciones registradas en la pista de auditoría.
const (
	AccionCrear    = "CREAR"
	AccionEditar   = "EDITAR"
	AccionEliminar = "ELIMINAR"
	AccionCalcular = "CALCULAR"
	AccionCerrar   = "CERRAR"
	AccionMarcar   = "MARCAR"
	AccionLogin    = "LOGIN"
)

// LogAuditoria deja constancia de quién tocó qué y cuándo. UsuarioUsername
// se copia plano para que el log sobreviva al borrado del usuario.
type LogAuditoria struct {
	ID              int64  `json:"id"`
	Fecha           string `json:"fecha"`
	UsuarioID       *int64 `json:"usuario"`
	UsuarioUsername string `json:"usuario_username"`
	Modelo          string `json:"modelo"`
	ObjetoID        int64  `json:"objeto_id"`
	Accion          string `json:"accion"`
	Detalle         string `json:"detalle"`
}
