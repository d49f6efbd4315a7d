package repositories

import (
	"database/sql"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
)

// FichadaRepository registra marcaciones y arma las asistencias diarias.
type FichadaRepository struct {
	DB *sql.DB
}

const fichadaColumns = `f.id, f.empleado_id, CONCAT(e.nombre, ' ', e.apellido),
	DATE_FORMAT(f.fecha, '%Y-%m-%d'), DATE_FORMAT(f.hora, '%H:%i:%s'), f.tipo,
	COALESCE(DATE_FORMAT(f.created_at, '%Y-%m-%d %H:%i:%s'), '')`

const fichadaJoin = `fichadas f JOIN empleados e ON e.id = f.empleado_id`

func fichadaSpec(empleadoID int64) ListSpec {
	spec := ListSpec{
		Table:         fichadaJoin,
		Columns:       fichadaColumns,
		SearchColumns: []string{"e.nombre", "e.apellido", "e.cedula"},
		OrderingFields: map[string]string{
			"id":       "f.id",
			"fecha":    "f.fecha",
			"hora":     "f.hora",
			"empleado": "e.apellido",
		},
		FilterFields: map[string]string{
			"empleado": "f.empleado_id",
			"fecha":    "f.fecha",
			"tipo":     "f.tipo",
		},
		DefaultOrdering: "-fecha,-hora",
	}
	if empleadoID > 0 {
		spec.BaseWhere = []string{"f.empleado_id = ?"}
		spec.BaseArgs = []any{empleadoID}
	}
	return spec
}

func scanFichada(scan func(dest ...any) error) (models.Fichada, error) {
	var f models.Fichada
	err := scan(&f.ID, &f.EmpleadoID, &f.EmpleadoNombre, &f.Fecha, &f.Hora, &f.Tipo, &f.CreatedAt)
	return f, err
}

// List pagina fichadas; con empleadoID > 0 queda acotada a ese empleado
// (la vista del rol EMPLEADO).
func (r FichadaRepository) List(p ListParams, empleadoID int64) ([]models.Fichada, int, error) {
	spec := fichadaSpec(empleadoID)
	query, args := spec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Fichada{}
	for rows.Next() {
		f, err := scanFichada(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, f)
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

// UltimaDelDia devuelve la marcación más reciente del empleado en la fecha.
func (r FichadaRepository) UltimaDelDia(empleadoID int64, fecha string) (models.Fichada, error) {
	f, err := scanFichada(r.DB.QueryRow(`SELECT `+fichadaColumns+` FROM `+fichadaJoin+`
		WHERE f.empleado_id = ? AND f.fecha = ? ORDER BY f.hora DESC, f.id DESC LIMIT 1`,
		empleadoID, fecha).Scan)
	if err == sql.ErrNoRows {
		return f, domain.NotFound("fichada", err)
	}
	return f, err
}

func (r FichadaRepository) Create(f models.Fichada) (models.Fichada, error) {
	res, err := r.DB.Exec(`
		INSERT INTO fichadas (empleado_id, fecha, hora, tipo, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, f.EmpleadoID, f.Fecha, f.Hora, f.Tipo)
	if err != nil {
		return f, err
	}
	id, _ := res.LastInsertId()

	out, err := scanFichada(r.DB.QueryRow(`SELECT `+fichadaColumns+` FROM `+fichadaJoin+` WHERE f.id = ?`, id).Scan)
	if err != nil {
		f.ID = id
		return f, nil
	}
	return out, nil
}

// AsistenciasMensuales agrega entrada mínima, salida máxima y horas por día.
// Días con entrada sin salida quedan con salida vacía y cero horas.
func (r FichadaRepository) AsistenciasMensuales(mes, anio int, empleadoID int64) ([]models.Asistencia, error) {
	query := `
		SELECT f.empleado_id, CONCAT(e.nombre, ' ', e.apellido),
			DATE_FORMAT(f.fecha, '%Y-%m-%d'),
			COALESCE(DATE_FORMAT(MIN(CASE WHEN f.tipo = 'ENTRADA' THEN f.hora END), '%H:%i:%s'), ''),
			COALESCE(DATE_FORMAT(MAX(CASE WHEN f.tipo = 'SALIDA' THEN f.hora END), '%H:%i:%s'), ''),
			COALESCE(TIME_TO_SEC(TIMEDIFF(
				MAX(CASE WHEN f.tipo = 'SALIDA' THEN f.hora END),
				MIN(CASE WHEN f.tipo = 'ENTRADA' THEN f.hora END))) / 3600.0, 0)
		FROM fichadas f
		JOIN empleados e ON e.id = f.empleado_id
		WHERE MONTH(f.fecha) = ? AND YEAR(f.fecha) = ?`
	args := []any{mes, anio}
	if empleadoID > 0 {
		query += ` AND f.empleado_id = ?`
		args = append(args, empleadoID)
	}
	query += ` GROUP BY f.empleado_id, e.nombre, e.apellido, f.fecha
		ORDER BY f.fecha, e.apellido`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Asistencia{}
	for rows.Next() {
		var a models.Asistencia
		if err := rows.Scan(&a.EmpleadoID, &a.EmpleadoNombre, &a.Fecha, &a.Entrada, &a.Salida, &a.Horas); err != nil {
			return nil, err
		}
		if a.Horas < 0 {
			a.Horas = 0
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UltimasDeEmpleado sirve el dashboard del empleado.
func (r FichadaRepository) UltimasDeEmpleado(empleadoID int64, limit int) ([]models.Fichada, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.Query(`SELECT `+fichadaColumns+` FROM `+fichadaJoin+`
		WHERE f.empleado_id = ? ORDER BY f.fecha DESC, f.hora DESC LIMIT ?`, empleadoID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Fichada{}
	for rows.Next() {
		f, err := scanFichada(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
