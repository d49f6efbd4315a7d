package repositories

import (
	"testing"

	"nomina/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var empleadoTestCols = []string{
	"id", "nombre", "apellido", "cedula", "direccion", "telefono", "email",
	"salario_base", "activo", "usuario_id", "created_at", "updated_at",
}

func expectEmpleadoConHijos(mock sqlmock.Sqlmock, id int64, salario int64) {
	mock.ExpectQuery("FROM empleados WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(empleadoTestCols).
			AddRow(id, "Ana", "Gómez", "1234567", "Asunción", "0981", "ana@example.com",
				salario, true, nil, "", ""))
	mock.ExpectQuery("FROM hijos").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "fecha_nacimiento", "reside_py"}).
			AddRow(1, "Luis", "2015-03-10", true))
}

func TestPatchEmpleadoSoloSalario(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// lectura inicial
	expectEmpleadoConHijos(mock, 5, 3000000)

	// Update interno: relee, chequea cédula, reescribe ficha e hijos
	expectEmpleadoConHijos(mock, 5, 3000000)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM empleados WHERE cedula").
		WithArgs("1234567", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE empleados").
		WithArgs("Ana", "Gómez", "1234567", "Asunción", "0981", "ana@example.com",
			int64(3500000), true, nil, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM hijos").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO hijos").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// lectura final
	expectEmpleadoConHijos(mock, 5, 3500000)

	repo := EmpleadoRepository{DB: db}
	e, err := repo.Patch(5, []byte(`{"salario_base":3500000}`))
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if e.SalarioBase != 3500000 {
		t.Fatalf("salario not patched: %d", e.SalarioBase)
	}
	// los hijos no vinieron en el body: se conservan
	if len(e.Hijos) != 1 {
		t.Fatalf("hijos should survive a patch without the key: %+v", e.Hijos)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPatchEmpleadoJSONInvalido(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectEmpleadoConHijos(mock, 5, 3000000)

	repo := EmpleadoRepository{DB: db}
	if _, err := repo.Patch(5, []byte(`{no es json`)); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteEmpleadoConLiquidaciones(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM liquidaciones WHERE empleado_id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := EmpleadoRepository{DB: db}
	if err := repo.Delete(5); !domain.IsConflict(err) {
		t.Fatalf("expected conflict deleting empleado with liquidaciones, got %v", err)
	}
}
