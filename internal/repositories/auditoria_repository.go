package repositories

import (
	"database/sql"
	"strings"

	"nomina/internal/domain/models"
)

// AuditoriaRepository persiste la pista de auditoría. Es de solo inserción;
// nadie edita ni borra logs por la API.
type AuditoriaRepository struct {
	DB *sql.DB
}

const auditoriaColumns = `id, DATE_FORMAT(fecha, '%Y-%m-%d %H:%i:%s'), usuario_id,
	COALESCE(usuario_username, ''), modelo, objeto_id, accion, COALESCE(detalle, '')`

var auditoriaListSpec = ListSpec{
	Table:         "auditoria_logs",
	Columns:       auditoriaColumns,
	SearchColumns: []string{"modelo", "detalle", "usuario_username"},
	OrderingFields: map[string]string{
		"id":     "id",
		"fecha":  "fecha",
		"modelo": "modelo",
		"accion": "accion",
	},
	FilterFields: map[string]string{
		"modelo":  "modelo",
		"accion":  "accion",
		"usuario": "usuario_id",
		// la vista de historial consulta por objeto puntual
		"obj": "modelo",
		"id":  "objeto_id",
	},
	DefaultOrdering: "-fecha",
}

// List soporta los filtros de la pantalla de auditoría, incluido el rango
// de fechas desde/hasta que no encaja en el filtro de igualdad exacta.
func (r AuditoriaRepository) List(p ListParams) ([]models.LogAuditoria, int, error) {
	spec := auditoriaListSpec

	if desde := strings.TrimSpace(p.Filters["desde"]); desde != "" {
		spec.BaseWhere = append(spec.BaseWhere, "fecha >= ?")
		spec.BaseArgs = append(spec.BaseArgs, desde)
	}
	if hasta := strings.TrimSpace(p.Filters["hasta"]); hasta != "" {
		spec.BaseWhere = append(spec.BaseWhere, "fecha < DATE_ADD(?, INTERVAL 1 DAY)")
		spec.BaseArgs = append(spec.BaseArgs, hasta)
	}

	query, args := spec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.LogAuditoria{}
	for rows.Next() {
		var l models.LogAuditoria
		var usuarioID sql.NullInt64
		if err := rows.Scan(&l.ID, &l.Fecha, &usuarioID, &l.UsuarioUsername,
			&l.Modelo, &l.ObjetoID, &l.Accion, &l.Detalle); err != nil {
			return nil, 0, err
		}
		if usuarioID.Valid {
			l.UsuarioID = &usuarioID.Int64
		}
		out = append(out, l)
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

func (r AuditoriaRepository) Registrar(l models.LogAuditoria) error {
	var usuarioID any
	if l.UsuarioID != nil && *l.UsuarioID > 0 {
		usuarioID = *l.UsuarioID
	}
	_, err := r.DB.Exec(`
		INSERT INTO auditoria_logs (fecha, usuario_id, usuario_username, modelo, objeto_id, accion, detalle)
		VALUES (NOW(), ?, ?, ?, ?, ?, ?)
	`, usuarioID, l.UsuarioUsername, l.Modelo, l.ObjetoID, l.Accion, l.Detalle)
	return err
}
