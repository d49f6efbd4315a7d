package repositories

import (
	"testing"

	"nomina/internal/domain"
	"nomina/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var liquidacionCols = []string{
	"id", "empleado_id", "empleado", "mes", "anio", "salario_base",
	"bonificacion_hijos", "ips", "total_ingresos", "total_descuentos",
	"neto_cobrar", "cerrada", "calculada_en", "created_at", "updated_at",
}

func liquidacionRow(id int64, cerrada bool, calculadaEn string) *sqlmock.Rows {
	return sqlmock.NewRows(liquidacionCols).
		AddRow(id, 5, "Ana Gómez", 6, 2025, 3000000, 0, 270000,
			3000000, 270000, 2730000, cerrada, calculadaEn, "", "")
}

func TestCreateLiquidacionPeriodoDuplicado(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM liquidaciones WHERE empleado_id").
		WithArgs(int64(5), 6, 2025).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := LiquidacionRepository{DB: db}
	_, err = repo.Create(models.Liquidacion{EmpleadoID: 5, Mes: 6, Anio: 2025})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate period, got %v", err)
	}
}

func TestCreateLiquidacionPeriodoInvalido(t *testing.T) {
	repo := LiquidacionRepository{}
	if _, err := repo.Create(models.Liquidacion{EmpleadoID: 5, Mes: 13, Anio: 2025}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for mes 13, got %v", err)
	}
	if _, err := repo.Create(models.Liquidacion{EmpleadoID: 5, Mes: 1, Anio: 1900}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for anio 1900, got %v", err)
	}
}

func TestGuardarCalculoTransaccion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	conceptoID := int64(3)
	res := models.ResultadoCalculo{
		Base:              3000000,
		BonificacionHijos: 139915,
		IPS:               270000,
		Ingresos: []models.LiquidacionDetalle{
			{ConceptoID: &conceptoID, Descripcion: "Horas extra", Monto: 500000},
		},
		Descuentos: []models.LiquidacionDetalle{
			{Descripcion: "Adelanto", EsDebito: true, Monto: 400000},
		},
		TotalIngresos:   3639915,
		TotalDescuentos: 670000,
		Total:           2969915,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE liquidaciones").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM liquidacion_detalles").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO liquidacion_detalles").
		WithArgs(int64(9), int64(3), "Horas extra", false, int64(500000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO liquidacion_detalles").
		WithArgs(int64(9), nil, "Adelanto", true, int64(400000)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE asignaciones SET activo = 0").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := LiquidacionRepository{DB: db}
	if err := repo.GuardarCalculo(9, res, []int64{10}); err != nil {
		t.Fatalf("GuardarCalculo returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGuardarCalculoRollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE liquidaciones").
		WillReturnError(errForzado{})
	mock.ExpectRollback()

	repo := LiquidacionRepository{DB: db}
	if err := repo.GuardarCalculo(9, models.ResultadoCalculo{}, nil); err == nil {
		t.Fatalf("expected error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

type errForzado struct{}

func (errForzado) Error() string { return "forzado" }

func TestCerrarYaCerrada(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM liquidaciones l JOIN").
		WithArgs(int64(9)).
		WillReturnRows(liquidacionRow(9, true, "2025-06-30 18:00:00"))

	repo := LiquidacionRepository{DB: db}
	if _, err := repo.Cerrar(9); !domain.IsConflict(err) {
		t.Fatalf("expected conflict closing a closed liquidación, got %v", err)
	}
}

func TestCerrarSinCalcular(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM liquidaciones l JOIN").
		WithArgs(int64(9)).
		WillReturnRows(liquidacionRow(9, false, ""))

	repo := LiquidacionRepository{DB: db}
	if _, err := repo.Cerrar(9); !domain.IsConflict(err) {
		t.Fatalf("expected conflict closing an uncalculated liquidación, got %v", err)
	}
}

func TestDeleteLiquidacionCerrada(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM liquidaciones l JOIN").
		WithArgs(int64(9)).
		WillReturnRows(liquidacionRow(9, true, "2025-06-30 18:00:00"))

	repo := LiquidacionRepository{DB: db}
	if err := repo.Delete(9); !domain.IsConflict(err) {
		t.Fatalf("expected conflict deleting a closed liquidación, got %v", err)
	}
}

func TestAcumuladoAguinaldoExcluyeBonificacion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// solo salario base: la bonificación familiar no computa para el aguinaldo
	mock.ExpectQuery(`SUM\(salario_base\), 0`).
		WithArgs(int64(5), 2025).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(3000000))
	mock.ExpectQuery("FROM liquidacion_detalles d").
		WithArgs(int64(5), 2025).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(500000))

	repo := LiquidacionRepository{DB: db}
	total, err := repo.AcumuladoAguinaldo(5, 2025)
	if err != nil {
		t.Fatalf("AcumuladoAguinaldo returned error: %v", err)
	}
	if total != 3500000 {
		t.Fatalf("acumulado = %d, want 3500000", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
