package services

import (
	"testing"
	"time"

	"nomina/internal/domain"
	"nomina/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var empleadoCols = []string{
	"id", "nombre", "apellido", "cedula", "direccion", "telefono", "email",
	"salario_base", "activo", "usuario_id", "created_at", "updated_at",
}

var fichadaCols = []string{"id", "empleado_id", "empleado", "fecha", "hora", "tipo", "created_at"}

func expectEmpleadoPorUsuario(mock sqlmock.Sqlmock, usuarioID, empleadoID int64) {
	mock.ExpectQuery("SELECT id FROM empleados WHERE usuario_id").
		WithArgs(usuarioID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(empleadoID))
	mock.ExpectQuery("FROM empleados WHERE id").
		WithArgs(empleadoID).
		WillReturnRows(sqlmock.NewRows(empleadoCols).
			AddRow(empleadoID, "Ana", "Gómez", "1234567", "", "", "ana@example.com",
				3000000, true, usuarioID, "", ""))
	mock.ExpectQuery("FROM hijos").
		WithArgs(empleadoID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "fecha_nacimiento", "reside_py"}))
}

func asistenciaServiceTest(empleados repositories.EmpleadoRepository, fichadas repositories.FichadaRepository) AsistenciaService {
	return AsistenciaService{
		Empleados: empleados,
		Fichadas:  fichadas,
		Ahora: func() time.Time {
			return time.Date(2025, 6, 10, 8, 30, 0, 0, time.Local)
		},
	}
}

func TestMarcarEntrada(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectEmpleadoPorUsuario(mock, 7, 5)
	mock.ExpectQuery("FROM fichadas f JOIN").
		WithArgs(int64(5), "2025-06-10").
		WillReturnRows(sqlmock.NewRows(fichadaCols))
	mock.ExpectExec("INSERT INTO fichadas").
		WithArgs(int64(5), "2025-06-10", "08:30:00", "ENTRADA").
		WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectQuery("FROM fichadas f JOIN").
		WithArgs(int64(33)).
		WillReturnRows(sqlmock.NewRows(fichadaCols).
			AddRow(33, 5, "Ana Gómez", "2025-06-10", "08:30:00", "ENTRADA", ""))

	svc := asistenciaServiceTest(repositories.EmpleadoRepository{DB: db}, repositories.FichadaRepository{DB: db})
	f, err := svc.Marcar(7, "ENTRADA")
	if err != nil {
		t.Fatalf("Marcar returned error: %v", err)
	}
	if f.ID != 33 || f.Tipo != "ENTRADA" {
		t.Fatalf("unexpected fichada: %+v", f)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarcarSalidaSinEntrada(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectEmpleadoPorUsuario(mock, 7, 5)
	mock.ExpectQuery("FROM fichadas f JOIN").
		WithArgs(int64(5), "2025-06-10").
		WillReturnRows(sqlmock.NewRows(fichadaCols))

	svc := asistenciaServiceTest(repositories.EmpleadoRepository{DB: db}, repositories.FichadaRepository{DB: db})
	_, err = svc.Marcar(7, "SALIDA")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMarcarEntradaDuplicada(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectEmpleadoPorUsuario(mock, 7, 5)
	mock.ExpectQuery("FROM fichadas f JOIN").
		WithArgs(int64(5), "2025-06-10").
		WillReturnRows(sqlmock.NewRows(fichadaCols).
			AddRow(30, 5, "Ana Gómez", "2025-06-10", "08:00:00", "ENTRADA", ""))

	svc := asistenciaServiceTest(repositories.EmpleadoRepository{DB: db}, repositories.FichadaRepository{DB: db})
	_, err = svc.Marcar(7, "ENTRADA")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMarcarTipoInvalido(t *testing.T) {
	svc := AsistenciaService{}
	if _, err := svc.Marcar(7, "ALMUERZO"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
