package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
)

// LiquidacionRepository maneja corridas de nómina y su desglose materializado.
type LiquidacionRepository struct {
	DB *sql.DB
}

const liquidacionColumns = `l.id, l.empleado_id, CONCAT(e.nombre, ' ', e.apellido),
	l.mes, l.anio, l.salario_base, l.bonificacion_hijos, l.ips,
	l.total_ingresos, l.total_descuentos, l.neto_cobrar, l.cerrada,
	COALESCE(DATE_FORMAT(l.calculada_en, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(l.created_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(l.updated_at, '%Y-%m-%d %H:%i:%s'), '')`

const liquidacionJoin = `liquidaciones l JOIN empleados e ON e.id = l.empleado_id`

var liquidacionListSpec = ListSpec{
	Table:         liquidacionJoin,
	Columns:       liquidacionColumns,
	SearchColumns: []string{"e.nombre", "e.apellido", "e.cedula"},
	OrderingFields: map[string]string{
		"id":               "l.id",
		"mes":              "l.mes",
		"anio":             "l.anio",
		"empleado":         "e.apellido",
		"total_ingresos":   "l.total_ingresos",
		"total_descuentos": "l.total_descuentos",
		"neto_cobrar":      "l.neto_cobrar",
	},
	FilterFields: map[string]string{
		"empleado": "l.empleado_id",
		"mes":      "l.mes",
		"anio":     "l.anio",
		"cerrada":  "l.cerrada",
	},
	DefaultOrdering: "-anio,-mes",
}

func scanLiquidacion(scan func(dest ...any) error) (models.Liquidacion, error) {
	var l models.Liquidacion
	err := scan(&l.ID, &l.EmpleadoID, &l.EmpleadoNombre, &l.Mes, &l.Anio,
		&l.SalarioBase, &l.BonificacionHijos, &l.IPS, &l.TotalIngresos,
		&l.TotalDescuentos, &l.NetoCobrar, &l.Cerrada, &l.CalculadaEn,
		&l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r LiquidacionRepository) List(p ListParams) ([]models.Liquidacion, int, error) {
	query, args := liquidacionListSpec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Liquidacion{}
	for rows.Next() {
		l, err := scanLiquidacion(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := liquidacionListSpec.BuildCount(p)
	var count int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r LiquidacionRepository) GetByID(id int64) (models.Liquidacion, error) {
	l, err := scanLiquidacion(r.DB.QueryRow(`SELECT `+liquidacionColumns+` FROM `+liquidacionJoin+` WHERE l.id = ?`, id).Scan)
	if err == sql.ErrNoRows {
		return l, domain.NotFound("liquidación", err)
	}
	return l, err
}

func (r LiquidacionRepository) GetDetalles(liquidacionID int64) ([]models.LiquidacionDetalle, error) {
	rows, err := r.DB.Query(`
		SELECT id, liquidacion_id, concepto_id, descripcion, es_debito, monto
		FROM liquidacion_detalles WHERE liquidacion_id = ? ORDER BY es_debito, id
	`, liquidacionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LiquidacionDetalle{}
	for rows.Next() {
		var d models.LiquidacionDetalle
		var conceptoID sql.NullInt64
		if err := rows.Scan(&d.ID, &d.LiquidacionID, &conceptoID, &d.Descripcion, &d.EsDebito, &d.Monto); err != nil {
			return nil, err
		}
		if conceptoID.Valid {
			d.ConceptoID = &conceptoID.Int64
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func validarPeriodo(mes, anio int) error {
	if mes < 1 || mes > 12 {
		return domain.Invalid("mes", "debe estar entre 1 y 12")
	}
	if anio < 2000 || anio > 2100 {
		return domain.Invalid("anio", "fuera de rango")
	}
	return nil
}

func (r LiquidacionRepository) ExistePeriodo(empleadoID int64, mes, anio int) (bool, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM liquidaciones WHERE empleado_id = ? AND mes = ? AND anio = ?`,
		empleadoID, mes, anio).Scan(&n)
	return n > 0, err
}

// Create abre la liquidación del período con totales en cero.
func (r LiquidacionRepository) Create(l models.Liquidacion) (models.Liquidacion, error) {
	if l.EmpleadoID <= 0 {
		return l, domain.Invalid("empleado", "obligatorio")
	}
	if err := validarPeriodo(l.Mes, l.Anio); err != nil {
		return l, err
	}
	exists, err := r.ExistePeriodo(l.EmpleadoID, l.Mes, l.Anio)
	if err != nil {
		return l, err
	}
	if exists {
		return l, domain.Conflict("liquidación", "ya existe para ese empleado y período")
	}

	res, err := r.DB.Exec(`
		INSERT INTO liquidaciones (empleado_id, mes, anio, salario_base, bonificacion_hijos,
			ips, total_ingresos, total_descuentos, neto_cobrar, cerrada, created_at, updated_at)
		VALUES (?, ?, ?, 0, 0, 0, 0, 0, 0, 0, NOW(), NOW())
	`, l.EmpleadoID, l.Mes, l.Anio)
	if err != nil {
		return l, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

// Update solo permite mover el período de una liquidación abierta.
func (r LiquidacionRepository) Update(id int64, l models.Liquidacion) (models.Liquidacion, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return l, err
	}
	if existing.Cerrada {
		return l, domain.Conflict("liquidación", "está cerrada")
	}
	if err := validarPeriodo(l.Mes, l.Anio); err != nil {
		return l, err
	}
	if l.EmpleadoID <= 0 {
		l.EmpleadoID = existing.EmpleadoID
	}

	if l.EmpleadoID != existing.EmpleadoID || l.Mes != existing.Mes || l.Anio != existing.Anio {
		exists, err := r.ExistePeriodo(l.EmpleadoID, l.Mes, l.Anio)
		if err != nil {
			return l, err
		}
		if exists {
			return l, domain.Conflict("liquidación", "ya existe para ese empleado y período")
		}
	}

	_, err = r.DB.Exec(`
		UPDATE liquidaciones SET empleado_id = ?, mes = ?, anio = ?, updated_at = NOW()
		WHERE id = ?
	`, l.EmpleadoID, l.Mes, l.Anio, id)
	if err != nil {
		return l, err
	}
	return r.GetByID(id)
}

// Patch aplica clave-presencia sobre empleado/mes/anio.
func (r LiquidacionRepository) Patch(id int64, rawJSON []byte) (models.Liquidacion, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return existing, err
	}
	merged := existing
	if err := json.Unmarshal(rawJSON, &merged); err != nil {
		return existing, domain.Invalid("body", "JSON inválido")
	}
	return r.Update(id, merged)
}

func (r LiquidacionRepository) Delete(id int64) error {
	existing, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if existing.Cerrada {
		return domain.Conflict("liquidación", "está cerrada")
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM liquidacion_detalles WHERE liquidacion_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM liquidaciones WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// GuardarCalculo persiste totales y desglose en una sola transacción y
// desactiva las asignaciones no recurrentes ya consumidas.
func (r LiquidacionRepository) GuardarCalculo(id int64, res models.ResultadoCalculo, consumidas []int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE liquidaciones
		SET salario_base = ?, bonificacion_hijos = ?, ips = ?, total_ingresos = ?,
			total_descuentos = ?, neto_cobrar = ?, calculada_en = ?, updated_at = NOW()
		WHERE id = ?
	`, res.Base, res.BonificacionHijos, res.IPS, res.TotalIngresos,
		res.TotalDescuentos, res.Total, time.Now(), id); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM liquidacion_detalles WHERE liquidacion_id = ?`, id); err != nil {
		return err
	}

	insert := func(d models.LiquidacionDetalle) error {
		var conceptoID any
		if d.ConceptoID != nil {
			conceptoID = *d.ConceptoID
		}
		_, err := tx.Exec(`
			INSERT INTO liquidacion_detalles (liquidacion_id, concepto_id, descripcion, es_debito, monto)
			VALUES (?, ?, ?, ?, ?)
		`, id, conceptoID, d.Descripcion, d.EsDebito, d.Monto)
		return err
	}
	for _, d := range res.Ingresos {
		if err := insert(d); err != nil {
			return err
		}
	}
	for _, d := range res.Descuentos {
		if err := insert(d); err != nil {
			return err
		}
	}

	for _, asignacionID := range consumidas {
		if _, err := tx.Exec(`UPDATE asignaciones SET activo = 0 WHERE id = ?`, asignacionID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r LiquidacionRepository) Cerrar(id int64) (models.Liquidacion, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return existing, err
	}
	if existing.Cerrada {
		return existing, domain.Conflict("liquidación", "ya está cerrada")
	}
	if existing.CalculadaEn == "" {
		return existing, domain.Conflict("liquidación", "no fue calculada todavía")
	}
	if _, err := r.DB.Exec(`UPDATE liquidaciones SET cerrada = 1, updated_at = NOW() WHERE id = ?`, id); err != nil {
		return existing, err
	}
	return r.GetByID(id)
}

// ListAbiertas devuelve las liquidaciones no cerradas de un período.
func (r LiquidacionRepository) ListAbiertas(mes, anio int) ([]models.Liquidacion, error) {
	rows, err := r.DB.Query(`SELECT `+liquidacionColumns+` FROM `+liquidacionJoin+`
		WHERE l.mes = ? AND l.anio = ? AND l.cerrada = 0 ORDER BY e.apellido, e.nombre`, mes, anio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Liquidacion{}
	for rows.Next() {
		l, err := scanLiquidacion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListPeriodo devuelve todas las liquidaciones de un período para reportes.
func (r LiquidacionRepository) ListPeriodo(mes, anio int, empleadoID int64) ([]models.Liquidacion, error) {
	query := `SELECT ` + liquidacionColumns + ` FROM ` + liquidacionJoin + ` WHERE l.mes = ? AND l.anio = ?`
	args := []any{mes, anio}
	if empleadoID > 0 {
		query += ` AND l.empleado_id = ?`
		args = append(args, empleadoID)
	}
	query += ` ORDER BY e.apellido, e.nombre`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Liquidacion{}
	for rows.Next() {
		l, err := scanLiquidacion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ResumenNomina agrega los totales de un período.
type ResumenNomina struct {
	Cantidad        int   `json:"cantidad"`
	Cerradas        int   `json:"cerradas"`
	TotalIngresos   int64 `json:"total_ingresos"`
	TotalDescuentos int64 `json:"total_descuentos"`
	TotalNeto       int64 `json:"total_neto"`
}

func (r LiquidacionRepository) ResumenPeriodo(mes, anio int) (ResumenNomina, error) {
	var s ResumenNomina
	err := r.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(cerrada), 0), COALESCE(SUM(total_ingresos), 0),
			COALESCE(SUM(total_descuentos), 0), COALESCE(SUM(neto_cobrar), 0)
		FROM liquidaciones WHERE mes = ? AND anio = ?
	`, mes, anio).Scan(&s.Cantidad, &s.Cerradas, &s.TotalIngresos, &s.TotalDescuentos, &s.TotalNeto)
	return s, err
}

// EvolucionMes es un punto de la serie anual para el dashboard de reportes.
type EvolucionMes struct {
	Mes             int   `json:"mes"`
	Anio            int   `json:"anio"`
	Liquidaciones   int   `json:"liquidaciones"`
	TotalIngresos   int64 `json:"total_ingresos"`
	TotalDescuentos int64 `json:"total_descuentos"`
	TotalNeto       int64 `json:"total_neto"`
}

func (r LiquidacionRepository) EvolucionAnual(anio int) ([]EvolucionMes, error) {
	rows, err := r.DB.Query(`
		SELECT mes, anio, COUNT(*), COALESCE(SUM(total_ingresos), 0),
			COALESCE(SUM(total_descuentos), 0), COALESCE(SUM(neto_cobrar), 0)
		FROM liquidaciones WHERE anio = ?
		GROUP BY mes, anio ORDER BY mes
	`, anio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EvolucionMes{}
	for rows.Next() {
		var e EvolucionMes
		if err := rows.Scan(&e.Mes, &e.Anio, &e.Liquidaciones, &e.TotalIngresos, &e.TotalDescuentos, &e.TotalNeto); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AcumuladoAguinaldo suma los ingresos computables del año: salarios base de
// los meses liquidados más los renglones cuyo concepto es para_aguinaldo.
// La bonificación familiar queda afuera, igual que del IPS.
func (r LiquidacionRepository) AcumuladoAguinaldo(empleadoID int64, anio int) (int64, error) {
	var bases int64
	if err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(salario_base), 0)
		FROM liquidaciones
		WHERE empleado_id = ? AND anio = ? AND calculada_en IS NOT NULL
	`, empleadoID, anio).Scan(&bases); err != nil {
		return 0, err
	}

	var extras int64
	if err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(d.monto), 0)
		FROM liquidacion_detalles d
		JOIN liquidaciones l ON l.id = d.liquidacion_id
		JOIN conceptos c ON c.id = d.concepto_id
		WHERE l.empleado_id = ? AND l.anio = ? AND d.es_debito = 0 AND c.para_aguinaldo = 1
	`, empleadoID, anio).Scan(&extras); err != nil {
		return 0, err
	}

	return bases + extras, nil
}

// UltimaDeEmpleado sirve el dashboard del empleado.
func (r LiquidacionRepository) UltimaDeEmpleado(empleadoID int64) (models.Liquidacion, error) {
	l, err := scanLiquidacion(r.DB.QueryRow(`SELECT `+liquidacionColumns+` FROM `+liquidacionJoin+`
		WHERE l.empleado_id = ? ORDER BY l.anio DESC, l.mes DESC LIMIT 1`, empleadoID).Scan)
	if err == sql.ErrNoRows {
		return l, domain.NotFound("liquidación", err)
	}
	return l, err
}
