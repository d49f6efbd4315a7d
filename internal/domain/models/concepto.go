package models

// Concepto define un renglón de nómina: ingreso (crédito) o descuento (débito).
type Concepto struct {
	ID           int64  `json:"id"`
	Descripcion  string `json:"descripcion"`
	EsDebito     bool   `json:"es_debito"`
	EsRecurrente bool   `json:"es_recurrente"`
	AfectaIPS    bool   `json:"afecta_ips"`
	ParaAguinaldo bool  `json:"para_aguinaldo"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Asignacion aplica un concepto a un empleado con un monto concreto.
// Las asignaciones de conceptos no recurrentes se desactivan al liquidarse.
type Asignacion struct {
	ID         int64 `json:"id"`
	EmpleadoID int64 `json:"empleado"`
	ConceptoID int64 `json:"concepto"`
	Monto      int64 `json:"monto"`
	Activo     bool  `json:"activo"`

	// Campos denormalizados del join con conceptos, solo lectura.
	ConceptoDescripcion string `json:"concepto_descripcion,omitempty"`
	EsDebito            bool   `json:"es_debito"`
	EsRecurrente        bool   `json:"es_recurrente"`
	AfectaIPS           bool   `json:"afecta_ips"`
	ParaAguinaldo       bool   `json:"para_aguinaldo"`
	EmpleadoNombre      string `json:"empleado_nombre,omitempty"`
}
