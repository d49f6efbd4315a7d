package services

import (
	"testing"

	"nomina/internal/domain"
	"nomina/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var liquidacionTestCols = []string{
	"id", "empleado_id", "empleado", "mes", "anio", "salario_base",
	"bonificacion_hijos", "ips", "total_ingresos", "total_descuentos",
	"neto_cobrar", "cerrada", "calculada_en", "created_at", "updated_at",
}

func TestReporteAvanzadoAguinaldo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM liquidaciones l JOIN").
		WithArgs(6, 2025).
		WillReturnRows(sqlmock.NewRows(liquidacionTestCols).
			AddRow(1, 5, "Ana Gómez", 6, 2025, 3000000, 0, 270000,
				3000000, 270000, 2730000, false, "2025-06-30 18:00:00", "", ""))

	// acumulado: bases liquidadas + extras para_aguinaldo
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(salario_base").
		WithArgs(int64(5), 2025).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(18000000))
	mock.ExpectQuery("FROM liquidacion_detalles d").
		WithArgs(int64(5), 2025).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(600000))

	svc := ReportesService{Liquidaciones: repositories.LiquidacionRepository{DB: db}}
	filas, err := svc.Avanzado(6, 2025, 0)
	require.NoError(t, err)
	require.Len(t, filas, 1)

	assert.Equal(t, int64(18600000), filas[0].AguinaldoAcumulado)
	assert.Equal(t, int64(1550000), filas[0].AguinaldoProyectado)
}

func TestReporteAvanzadoMesInvalido(t *testing.T) {
	svc := ReportesService{}
	_, err := svc.Avanzado(0, 2025, 0)
	assert.True(t, domain.IsValidation(err))
}

func TestKPIsPeriodoInvalido(t *testing.T) {
	svc := ReportesService{}
	_, err := svc.KPIs("junio-2025")
	assert.True(t, domain.IsValidation(err))
}

func TestParsePeriodoMes(t *testing.T) {
	mes, anio, err := parsePeriodoMes("2025-06")
	require.NoError(t, err)
	assert.Equal(t, 6, mes)
	assert.Equal(t, 2025, anio)

	// vacío usa el período corriente
	mes, anio, err = parsePeriodoMes("")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mes, 1)
	assert.LessOrEqual(t, mes, 12)
	assert.Positive(t, anio)
}
