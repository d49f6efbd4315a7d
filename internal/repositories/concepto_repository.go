package repositories

import (
	"database/sql"
	"strings"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
)

// ConceptoRepository maneja el catálogo de conceptos de nómina.
type ConceptoRepository struct {
	DB *sql.DB
}

const conceptoColumns = `id, descripcion, es_debito, es_recurrente, afecta_ips, para_aguinaldo,
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'), '')`

var conceptoListSpec = ListSpec{
	Table:         "conceptos",
	Columns:       conceptoColumns,
	SearchColumns: []string{"descripcion"},
	OrderingFields: map[string]string{
		"id":          "id",
		"descripcion": "descripcion",
		"es_debito":   "es_debito",
	},
	FilterFields: map[string]string{
		"es_debito":      "es_debito",
		"es_recurrente":  "es_recurrente",
		"afecta_ips":     "afecta_ips",
		"para_aguinaldo": "para_aguinaldo",
	},
	DefaultOrdering: "descripcion",
}

func scanConcepto(scan func(dest ...any) error) (models.Concepto, error) {
	var co models.Concepto
	err := scan(&co.ID, &co.Descripcion, &co.EsDebito, &co.EsRecurrente,
		&co.AfectaIPS, &co.ParaAguinaldo, &co.CreatedAt, &co.UpdatedAt)
	return co, err
}

func (r ConceptoRepository) List(p ListParams) ([]models.Concepto, int, error) {
	query, args := conceptoListSpec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Concepto{}
	for rows.Next() {
		co, err := scanConcepto(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, co)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := conceptoListSpec.BuildCount(p)
	var count int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r ConceptoRepository) GetByID(id int64) (models.Concepto, error) {
	co, err := scanConcepto(r.DB.QueryRow(`SELECT `+conceptoColumns+` FROM conceptos WHERE id = ?`, id).Scan)
	if err == sql.ErrNoRows {
		return co, domain.NotFound("concepto", err)
	}
	return co, err
}

func (r ConceptoRepository) Create(co models.Concepto) (models.Concepto, error) {
	if strings.TrimSpace(co.Descripcion) == "" {
		return co, domain.Invalid("descripcion", "obligatoria")
	}
	res, err := r.DB.Exec(`
		INSERT INTO conceptos (descripcion, es_debito, es_recurrente, afecta_ips, para_aguinaldo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, co.Descripcion, co.EsDebito, co.EsRecurrente, co.AfectaIPS, co.ParaAguinaldo)
	if err != nil {
		return co, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r ConceptoRepository) Update(id int64, co models.Concepto) (models.Concepto, error) {
	if strings.TrimSpace(co.Descripcion) == "" {
		return co, domain.Invalid("descripcion", "obligatoria")
	}
	if _, err := r.GetByID(id); err != nil {
		return co, err
	}
	_, err := r.DB.Exec(`
		UPDATE conceptos
		SET descripcion = ?, es_debito = ?, es_recurrente = ?, afecta_ips = ?, para_aguinaldo = ?, updated_at = NOW()
		WHERE id = ?
	`, co.Descripcion, co.EsDebito, co.EsRecurrente, co.AfectaIPS, co.ParaAguinaldo, id)
	if err != nil {
		return co, err
	}
	return r.GetByID(id)
}

func (r ConceptoRepository) Delete(id int64) error {
	var asignaciones int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM asignaciones WHERE concepto_id = ?`, id).Scan(&asignaciones); err != nil {
		return err
	}
	if asignaciones > 0 {
		return domain.Conflict("concepto", "tiene asignaciones vigentes")
	}

	res, err := r.DB.Exec(`DELETE FROM conceptos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("concepto", sql.ErrNoRows)
	}
	return nil
}
