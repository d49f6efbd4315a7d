package repositories

import (
	"database/sql"
	"strings"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
)

// AsignacionRepository vincula conceptos con empleados. Las retenciones del
// frontend son las asignaciones de conceptos de débito.
type AsignacionRepository struct {
	DB *sql.DB
}

const asignacionColumns = `a.id, a.empleado_id, a.concepto_id, a.monto, a.activo,
	c.descripcion, c.es_debito, c.es_recurrente, c.afecta_ips, c.para_aguinaldo,
	CONCAT(e.nombre, ' ', e.apellido)`

const asignacionJoin = `asignaciones a
	JOIN conceptos c ON c.id = a.concepto_id
	JOIN empleados e ON e.id = a.empleado_id`

func asignacionSpec(soloDebitos bool) ListSpec {
	spec := ListSpec{
		Table:         asignacionJoin,
		Columns:       asignacionColumns,
		SearchColumns: []string{"c.descripcion", "e.nombre", "e.apellido"},
		OrderingFields: map[string]string{
			"id":       "a.id",
			"monto":    "a.monto",
			"empleado": "e.apellido",
			"concepto": "c.descripcion",
		},
		FilterFields: map[string]string{
			"empleado": "a.empleado_id",
			"concepto": "a.concepto_id",
			"activo":   "a.activo",
		},
		DefaultOrdering: "-id",
	}
	if soloDebitos {
		spec.BaseWhere = []string{"c.es_debito = 1"}
	}
	return spec
}

func scanAsignacion(scan func(dest ...any) error) (models.Asignacion, error) {
	var a models.Asignacion
	err := scan(&a.ID, &a.EmpleadoID, &a.ConceptoID, &a.Monto, &a.Activo,
		&a.ConceptoDescripcion, &a.EsDebito, &a.EsRecurrente, &a.AfectaIPS,
		&a.ParaAguinaldo, &a.EmpleadoNombre)
	return a, err
}

// List pagina las asignaciones; con soloDebitos sirve la vista de retenciones.
func (r AsignacionRepository) List(p ListParams, soloDebitos bool) ([]models.Asignacion, int, error) {
	spec := asignacionSpec(soloDebitos)
	query, args := spec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Asignacion{}
	for rows.Next() {
		a, err := scanAsignacion(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := spec.BuildCount(p)
	var count int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r AsignacionRepository) GetByID(id int64) (models.Asignacion, error) {
	a, err := scanAsignacion(r.DB.QueryRow(`SELECT `+asignacionColumns+` FROM `+asignacionJoin+` WHERE a.id = ?`, id).Scan)
	if err == sql.ErrNoRows {
		return a, domain.NotFound("asignación", err)
	}
	return a, err
}

// ListActivasPorEmpleado alimenta el cálculo de liquidación.
func (r AsignacionRepository) ListActivasPorEmpleado(empleadoID int64) ([]models.Asignacion, error) {
	rows, err := r.DB.Query(`SELECT `+asignacionColumns+` FROM `+asignacionJoin+`
		WHERE a.empleado_id = ? AND a.activo = 1 ORDER BY a.id`, empleadoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Asignacion{}
	for rows.Next() {
		a, err := scanAsignacion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AsignacionRepository) Create(a models.Asignacion) (models.Asignacion, error) {
	if a.EmpleadoID <= 0 {
		return a, domain.Invalid("empleado", "obligatorio")
	}
	if a.ConceptoID <= 0 {
		return a, domain.Invalid("concepto", "obligatorio")
	}
	if a.Monto <= 0 {
		return a, domain.Invalid("monto", "debe ser mayor a cero")
	}

	res, err := r.DB.Exec(`
		INSERT INTO asignaciones (empleado_id, concepto_id, monto, activo)
		VALUES (?, ?, ?, ?)
	`, a.EmpleadoID, a.ConceptoID, a.Monto, a.Activo)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return a, domain.Invalid("asignación", "empleado o concepto inexistente")
		}
		return a, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r AsignacionRepository) Update(id int64, a models.Asignacion) (models.Asignacion, error) {
	if a.Monto <= 0 {
		return a, domain.Invalid("monto", "debe ser mayor a cero")
	}
	if _, err := r.GetByID(id); err != nil {
		return a, err
	}
	_, err := r.DB.Exec(`
		UPDATE asignaciones SET empleado_id = ?, concepto_id = ?, monto = ?, activo = ?
		WHERE id = ?
	`, a.EmpleadoID, a.ConceptoID, a.Monto, a.Activo, id)
	if err != nil {
		return a, err
	}
	return r.GetByID(id)
}

func (r AsignacionRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM asignaciones WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("asignación", sql.ErrNoRows)
	}
	return nil
}
