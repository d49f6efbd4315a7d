package repositories

import (
	"testing"

	"nomina/internal/domain"
	"nomina/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateUsuarioUsernameVacio(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UsuarioRepository{DB: db}
	_, err = repo.Update(5, models.Usuario{Username: "   ", Rol: models.RolAsistente, Activo: true})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank username, got %v", err)
	}
}

func TestUpdateUsuarioDuplicado(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// otro usuario ya tiene ese username o email
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM usuarios WHERE").
		WithArgs("ana", "ana@example.com", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := UsuarioRepository{DB: db}
	_, err = repo.Update(5, models.Usuario{
		Username: "ana", Email: "ana@example.com", Rol: models.RolAdmin, Activo: true,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate username/email, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
