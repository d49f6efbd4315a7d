package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
)

// EmpleadoRepository maneja fichas laborales e hijos anidados.
type EmpleadoRepository struct {
	DB *sql.DB
}

const empleadoColumns = `id, nombre, apellido, cedula, COALESCE(direccion, ''),
	COALESCE(telefono, ''), COALESCE(email, ''), salario_base, activo, usuario_id,
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'), '')`

var empleadoListSpec = ListSpec{
	Table:         "empleados",
	Columns:       empleadoColumns,
	SearchColumns: []string{"nombre", "apellido", "cedula"},
	OrderingFields: map[string]string{
		"id":           "id",
		"nombre":       "nombre",
		"apellido":     "apellido",
		"cedula":       "cedula",
		"salario_base": "salario_base",
	},
	FilterFields: map[string]string{
		"activo": "activo",
	},
	DefaultOrdering: "apellido,nombre",
}

func scanEmpleado(scan func(dest ...any) error) (models.Empleado, error) {
	var e models.Empleado
	var usuarioID sql.NullInt64
	err := scan(&e.ID, &e.Nombre, &e.Apellido, &e.Cedula, &e.Direccion,
		&e.Telefono, &e.Email, &e.SalarioBase, &e.Activo, &usuarioID,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	if usuarioID.Valid {
		e.UsuarioID = &usuarioID.Int64
	}
	e.Hijos = []models.Hijo{}
	return e, nil
}

func (r EmpleadoRepository) List(p ListParams) ([]models.Empleado, int, error) {
	query, args := empleadoListSpec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Empleado{}
	for rows.Next() {
		e, err := scanEmpleado(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := empleadoListSpec.BuildCount(p)
	var count int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r EmpleadoRepository) GetByID(id int64) (models.Empleado, error) {
	e, err := scanEmpleado(r.DB.QueryRow(`SELECT `+empleadoColumns+` FROM empleados WHERE id = ?`, id).Scan)
	if err == sql.ErrNoRows {
		return e, domain.NotFound("empleado", err)
	}
	if err != nil {
		return e, err
	}
	hijos, err := r.hijosDe(id)
	if err != nil {
		return e, err
	}
	e.Hijos = hijos
	return e, nil
}

// GetByUsuarioID resuelve la ficha laboral de una cuenta del sistema.
func (r EmpleadoRepository) GetByUsuarioID(usuarioID int64) (models.Empleado, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM empleados WHERE usuario_id = ?`, usuarioID).Scan(&id)
	if err == sql.ErrNoRows {
		return models.Empleado{}, domain.NotFound("empleado", err)
	}
	if err != nil {
		return models.Empleado{}, err
	}
	return r.GetByID(id)
}

func (r EmpleadoRepository) hijosDe(empleadoID int64) ([]models.Hijo, error) {
	rows, err := r.DB.Query(`
		SELECT id, nombre, COALESCE(DATE_FORMAT(fecha_nacimiento, '%Y-%m-%d'), ''), reside_py
		FROM hijos WHERE empleado_id = ? ORDER BY id
	`, empleadoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hijos := []models.Hijo{}
	for rows.Next() {
		var h models.Hijo
		if err := rows.Scan(&h.ID, &h.Nombre, &h.FechaNacimiento, &h.ResidePY); err != nil {
			return nil, err
		}
		hijos = append(hijos, h)
	}
	return hijos, rows.Err()
}

func validarEmpleado(e models.Empleado) error {
	if strings.TrimSpace(e.Nombre) == "" {
		return domain.Invalid("nombre", "obligatorio")
	}
	if strings.TrimSpace(e.Apellido) == "" {
		return domain.Invalid("apellido", "obligatorio")
	}
	if strings.TrimSpace(e.Cedula) == "" {
		return domain.Invalid("cedula", "obligatoria")
	}
	if e.SalarioBase < 0 {
		return domain.Invalid("salario_base", "no puede ser negativo")
	}
	return nil
}

func (r EmpleadoRepository) Create(e models.Empleado) (models.Empleado, error) {
	if err := validarEmpleado(e); err != nil {
		return e, err
	}

	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM empleados WHERE cedula = ?`, e.Cedula).Scan(&exists); err != nil {
		return e, err
	}
	if exists > 0 {
		return e, domain.Conflict("empleado", "cédula ya registrada")
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return e, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO empleados (nombre, apellido, cedula, direccion, telefono, email,
			salario_base, activo, usuario_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, e.Nombre, e.Apellido, e.Cedula, e.Direccion, e.Telefono, e.Email,
		e.SalarioBase, e.Activo, nullableID(e.UsuarioID))
	if err != nil {
		return e, err
	}
	id, _ := res.LastInsertId()

	if err := insertHijos(tx, id, e.Hijos); err != nil {
		return e, err
	}
	if err := tx.Commit(); err != nil {
		return e, err
	}
	return r.GetByID(id)
}

// Update reemplaza la ficha completa; los hijos se reescriben en bloque.
func (r EmpleadoRepository) Update(id int64, e models.Empleado) (models.Empleado, error) {
	if err := validarEmpleado(e); err != nil {
		return e, err
	}
	if _, err := r.GetByID(id); err != nil {
		return e, err
	}

	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM empleados WHERE cedula = ? AND id <> ?`, e.Cedula, id).Scan(&exists); err != nil {
		return e, err
	}
	if exists > 0 {
		return e, domain.Conflict("empleado", "cédula ya registrada")
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return e, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE empleados
		SET nombre = ?, apellido = ?, cedula = ?, direccion = ?, telefono = ?,
			email = ?, salario_base = ?, activo = ?, usuario_id = ?, updated_at = NOW()
		WHERE id = ?
	`, e.Nombre, e.Apellido, e.Cedula, e.Direccion, e.Telefono, e.Email,
		e.SalarioBase, e.Activo, nullableID(e.UsuarioID), id); err != nil {
		return e, err
	}

	if _, err := tx.Exec(`DELETE FROM hijos WHERE empleado_id = ?`, id); err != nil {
		return e, err
	}
	if err := insertHijos(tx, id, e.Hijos); err != nil {
		return e, err
	}
	if err := tx.Commit(); err != nil {
		return e, err
	}
	return r.GetByID(id)
}

// Patch aplica solo las claves presentes en el JSON crudo sobre la ficha
// existente. Los hijos se reemplazan únicamente si la clave viene en el body.
func (r EmpleadoRepository) Patch(id int64, rawJSON []byte) (models.Empleado, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return existing, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(rawJSON, &keys); err != nil {
		return existing, domain.Invalid("body", "JSON inválido")
	}

	merged := existing
	if err := json.Unmarshal(rawJSON, &merged); err != nil {
		return existing, domain.Invalid("body", "JSON inválido")
	}
	if _, ok := keys["hijos"]; !ok {
		merged.Hijos = existing.Hijos
	}
	return r.Update(id, merged)
}

func (r EmpleadoRepository) Delete(id int64) error {
	var liquidaciones int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM liquidaciones WHERE empleado_id = ?`, id).Scan(&liquidaciones); err != nil {
		return err
	}
	if liquidaciones > 0 {
		return domain.Conflict("empleado", "tiene liquidaciones registradas")
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM hijos WHERE empleado_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM empleados WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("empleado", sql.ErrNoRows)
	}
	return tx.Commit()
}

// ListActivos devuelve todos los empleados activos con sus hijos, para los
// procesos de período que recorren la plantilla completa.
func (r EmpleadoRepository) ListActivos() ([]models.Empleado, error) {
	rows, err := r.DB.Query(`SELECT ` + empleadoColumns + ` FROM empleados WHERE activo = 1 ORDER BY apellido, nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Empleado{}
	for rows.Next() {
		e, err := scanEmpleado(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		hijos, err := r.hijosDe(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Hijos = hijos
	}
	return out, nil
}

func insertHijos(tx *sql.Tx, empleadoID int64, hijos []models.Hijo) error {
	for _, h := range hijos {
		if strings.TrimSpace(h.Nombre) == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO hijos (empleado_id, nombre, fecha_nacimiento, reside_py)
			VALUES (?, ?, NULLIF(?, ''), ?)
		`, empleadoID, h.Nombre, h.FechaNacimiento, h.ResidePY); err != nil {
			return err
		}
	}
	return nil
}

func nullableID(id *int64) any {
	if id == nil || *id <= 0 {
		return nil
	}
	return *id
}
