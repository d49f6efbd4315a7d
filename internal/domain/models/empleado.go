package models

// Empleado es la ficha laboral. SalarioBase se guarda en guaraníes enteros.
type Empleado struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Cedula      string `json:"cedula"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
	SalarioBase int64  `json:"salario_base"`
	Activo      bool   `json:"activo"`
	// UsuarioID vincula la ficha con una cuenta del sistema (opcional).
	UsuarioID *int64 `json:"usuario"`
	Hijos     []Hijo `json:"hijos"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Hijo alimenta la bonificación familiar: 5% del salario mínimo por cada
// hijo menor de 18 años que resida en Paraguay.
type Hijo struct {
	ID              int64  `json:"id,omitempty"`
	Nombre          string `json:"nombre"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	ResidePY        bool   `json:"reside_py"`
}
