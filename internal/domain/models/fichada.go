package models

const (
	FichadaEntrada = "ENTRADA"
	FichadaSalida  = "SALIDA"
)

// Fichada es un evento puntual de marcación de entrada o salida.
type Fichada struct {
	ID             int64  `json:"id"`
	EmpleadoID     int64  `json:"empleado"`
	EmpleadoNombre string `json:"empleado_nombre,omitempty"`
	Fecha          string `json:"fecha"`
	Hora           string `json:"hora"`
	Tipo           string `json:"tipo"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// Asistencia agrega las fichadas de un empleado en un día.
type Asistencia struct {
	EmpleadoID     int64   `json:"empleado"`
	EmpleadoNombre string  `json:"empleado_nombre"`
	Fecha          string  `json:"fecha"`
	Entrada        string  `json:"entrada"`
	Salida         string  `json:"salida"`
	Horas          float64 `json:"horas"`
}
