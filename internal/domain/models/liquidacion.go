package models

// Liquidacion es la corrida de nómina de un empleado para un período mes/año.
// Los totales quedan en cero hasta que se ejecuta el cálculo.
type Liquidacion struct {
	ID              int64  `json:"id"`
	EmpleadoID      int64  `json:"empleado"`
	EmpleadoNombre  string `json:"empleado_nombre,omitempty"`
	Mes             int    `json:"mes"`
	Anio            int    `json:"anio"`
	SalarioBase     int64  `json:"salario_base"`
	BonificacionHijos int64 `json:"bonificacion_hijos"`
	IPS             int64  `json:"ips"`
	TotalIngresos   int64  `json:"total_ingresos"`
	TotalDescuentos int64  `json:"total_descuentos"`
	NetoCobrar      int64  `json:"neto_cobrar"`
	Cerrada         bool   `json:"cerrada"`
	CalculadaEn     string `json:"calculada_en,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// LiquidacionDetalle materializa un renglón del desglose al momento del
// cálculo; conserva la descripción aunque el concepto cambie después.
type LiquidacionDetalle struct {
	ID            int64  `json:"id"`
	LiquidacionID int64  `json:"liquidacion"`
	ConceptoID    *int64 `json:"concepto"`
	Descripcion   string `json:"descripcion"`
	EsDebito      bool   `json:"es_debito"`
	Monto         int64  `json:"monto"`
}

// ResultadoCalculo es el desglose que consume la pantalla de cálculo.
type ResultadoCalculo struct {
	Empleado          string               `json:"empleado"`
	EmpleadoID        int64                `json:"empleado_id"`
	Base              int64                `json:"base"`
	BonificacionHijos int64                `json:"bonificacion_hijos"`
	IPS               int64                `json:"ips"`
	Ingresos          []LiquidacionDetalle `json:"ingresos"`
	Descuentos        []LiquidacionDetalle `json:"descuentos"`
	TotalIngresos     int64                `json:"total_ingresos"`
	TotalDescuentos   int64                `json:"total_descuentos"`
	Total             int64                `json:"total"`
}
