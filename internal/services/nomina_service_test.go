package services

import (
	"testing"

	"nomina/internal/domain/models"
	"nomina/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salarioMinimoTest = 2798309

func paramsTest() ParametrosNomina {
	return ParametrosVigentes(salarioMinimoTest)
}

func TestCalcularDesgloseSoloSalario(t *testing.T) {
	emp := models.Empleado{ID: 1, Nombre: "Ana", Apellido: "Gómez", SalarioBase: 3000000}

	res, consumidas := CalcularDesglose(emp, nil, utils.FinDePeriodo(6, 2025), paramsTest())

	assert.Equal(t, "Ana Gómez", res.Empleado)
	assert.Equal(t, int64(3000000), res.Base)
	assert.Equal(t, int64(0), res.BonificacionHijos)
	// 9% de 3.000.000
	assert.Equal(t, int64(270000), res.IPS)
	assert.Equal(t, int64(3000000), res.TotalIngresos)
	assert.Equal(t, int64(270000), res.TotalDescuentos)
	assert.Equal(t, int64(2730000), res.Total)
	assert.Empty(t, consumidas)
}

func TestCalcularDesgloseRedondeoIPS(t *testing.T) {
	// 9% de 2.798.309 = 251.847,81 redondea a 251.848
	emp := models.Empleado{ID: 1, SalarioBase: salarioMinimoTest}

	res, _ := CalcularDesglose(emp, nil, utils.FinDePeriodo(1, 2025), paramsTest())

	assert.Equal(t, int64(251848), res.IPS)
}

func TestBonificacionFamiliarCortePorEdad(t *testing.T) {
	cierre := utils.FinDePeriodo(6, 2025)
	// 5% de 2.798.309 = 139.915,45 redondea a 139.915 por hijo
	porHijo := int64(139915)

	emp := models.Empleado{
		ID:          1,
		SalarioBase: 3000000,
		Hijos: []models.Hijo{
			// cumple 18 el 1 de julio: sigue siendo menor al cierre de junio
			{Nombre: "A", FechaNacimiento: "2007-07-01", ResidePY: true},
			// cumplió 18 el 15 de junio: ya no corresponde
			{Nombre: "B", FechaNacimiento: "2007-06-15", ResidePY: true},
			// menor pero no reside en el país
			{Nombre: "C", FechaNacimiento: "2015-03-10", ResidePY: false},
			// menor residente
			{Nombre: "D", FechaNacimiento: "2020-01-01", ResidePY: true},
		},
	}

	res, _ := CalcularDesglose(emp, nil, cierre, paramsTest())

	assert.Equal(t, 2*porHijo, res.BonificacionHijos)
	// la bonificación no entra al imponible IPS
	assert.Equal(t, int64(270000), res.IPS)
}

func TestCalcularDesgloseAsignaciones(t *testing.T) {
	emp := models.Empleado{ID: 1, SalarioBase: 3000000}
	asigs := []models.Asignacion{
		{ID: 10, ConceptoID: 1, ConceptoDescripcion: "Horas extra", Monto: 500000,
			EsDebito: false, EsRecurrente: false, AfectaIPS: true},
		{ID: 11, ConceptoID: 2, ConceptoDescripcion: "Bono gerencia", Monto: 200000,
			EsDebito: false, EsRecurrente: true, AfectaIPS: false},
		{ID: 12, ConceptoID: 3, ConceptoDescripcion: "Adelanto", Monto: 400000,
			EsDebito: true, EsRecurrente: false},
	}

	res, consumidas := CalcularDesglose(emp, asigs, utils.FinDePeriodo(3, 2025), paramsTest())

	require.Len(t, res.Ingresos, 2)
	require.Len(t, res.Descuentos, 1)

	// IPS sobre base + horas extra (afecta_ips); el bono no aporta
	assert.Equal(t, int64(315000), res.IPS)
	assert.Equal(t, int64(3700000), res.TotalIngresos)
	assert.Equal(t, int64(315000+400000), res.TotalDescuentos)
	assert.Equal(t, int64(3700000-715000), res.Total)

	// solo las no recurrentes se consumen tras persistir
	assert.Equal(t, []int64{10, 12}, consumidas)
}

func TestCalcularDesgloseNetoNegativo(t *testing.T) {
	emp := models.Empleado{ID: 1, SalarioBase: 1000000}
	asigs := []models.Asignacion{
		{ID: 1, ConceptoID: 1, ConceptoDescripcion: "Embargo judicial", Monto: 1500000,
			EsDebito: true, EsRecurrente: true},
	}

	res, _ := CalcularDesglose(emp, asigs, utils.FinDePeriodo(2, 2025), paramsTest())

	// el neto puede quedar negativo y se conserva tal cual
	assert.Negative(t, res.Total)
	assert.Equal(t, res.TotalIngresos-res.TotalDescuentos, res.Total)
}

func TestCalcularDesgloseDetalleConservaDescripcion(t *testing.T) {
	emp := models.Empleado{ID: 1, SalarioBase: 2000000}
	asigs := []models.Asignacion{
		{ID: 1, ConceptoID: 9, ConceptoDescripcion: "Comisión ventas", Monto: 100000,
			EsDebito: false, EsRecurrente: true},
	}

	res, _ := CalcularDesglose(emp, asigs, utils.FinDePeriodo(2, 2025), paramsTest())

	require.Len(t, res.Ingresos, 1)
	d := res.Ingresos[0]
	assert.Equal(t, "Comisión ventas", d.Descripcion)
	require.NotNil(t, d.ConceptoID)
	assert.Equal(t, int64(9), *d.ConceptoID)
	assert.False(t, d.EsDebito)
}

func TestHijoFechaInvalidaSeIgnora(t *testing.T) {
	emp := models.Empleado{ID: 1, SalarioBase: 2000000, Hijos: []models.Hijo{
		{Nombre: "X", FechaNacimiento: "no-es-fecha", ResidePY: true},
	}}

	res, _ := CalcularDesglose(emp, nil, utils.FinDePeriodo(2, 2025), paramsTest())
	assert.Equal(t, int64(0), res.BonificacionHijos)
}
