package repositories

import (
	"database/sql"
	"strings"
	"time"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
)

// UsuarioRepository maneja cuentas del sistema y tokens de reset.
type UsuarioRepository struct {
	DB *sql.DB
}

var usuarioListSpec = ListSpec{
	Table: "usuarios",
	Columns: `id, username, COALESCE(email, ''), rol, activo,
		COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), ''),
		COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'), '')`,
	SearchColumns: []string{"username", "email"},
	OrderingFields: map[string]string{
		"id":       "id",
		"username": "username",
		"email":    "email",
		"rol":      "rol",
	},
	FilterFields: map[string]string{
		"rol":    "rol",
		"activo": "activo",
	},
	DefaultOrdering: "username",
}

func (r UsuarioRepository) List(p ListParams) ([]models.Usuario, int, error) {
	query, args := usuarioListSpec.BuildSelect(p)
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Usuario{}
	for rows.Next() {
		var u models.Usuario
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		u.Rol = models.NormalizarRol(u.Rol)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs := usuarioListSpec.BuildCount(p)
	var count int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r UsuarioRepository) GetByID(id int64) (models.Usuario, error) {
	var u models.Usuario
	err := r.DB.QueryRow(`
		SELECT id, username, COALESCE(email, ''), rol, activo,
			COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), ''),
			COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM usuarios WHERE id = ?
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFound("usuario", err)
	}
	if err != nil {
		return u, err
	}
	u.Rol = models.NormalizarRol(u.Rol)
	return u, nil
}

// GetByLogin busca por username o email e incluye el hash para verificar.
func (r UsuarioRepository) GetByLogin(login string) (models.Usuario, error) {
	var u models.Usuario
	err := r.DB.QueryRow(`
		SELECT id, username, COALESCE(email, ''), password_hash, rol, activo
		FROM usuarios
		WHERE username = ? OR email = ?
	`, login, login).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo)
	if err == sql.ErrNoRows {
		return u, domain.NotFound("usuario", err)
	}
	if err != nil {
		return u, err
	}
	u.Rol = models.NormalizarRol(u.Rol)
	return u, nil
}

func (r UsuarioRepository) Create(u models.Usuario) (models.Usuario, error) {
	rol := models.NormalizarRol(u.Rol)
	if rol == "" {
		return u, domain.Invalid("rol", "rol no reconocido")
	}
	if strings.TrimSpace(u.Username) == "" {
		return u, domain.Invalid("username", "obligatorio")
	}

	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM usuarios WHERE username = ? OR (email <> '' AND email = ?)`,
		u.Username, u.Email).Scan(&exists); err != nil {
		return u, err
	}
	if exists > 0 {
		return u, domain.Conflict("usuario", "username o email ya registrado")
	}

	res, err := r.DB.Exec(`
		INSERT INTO usuarios (username, email, password_hash, rol, activo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Username, u.Email, u.PasswordHash, rol, u.Activo)
	if err != nil {
		return u, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r UsuarioRepository) Update(id int64, u models.Usuario) (models.Usuario, error) {
	rol := models.NormalizarRol(u.Rol)
	if rol == "" {
		return u, domain.Invalid("rol", "rol no reconocido")
	}
	if strings.TrimSpace(u.Username) == "" {
		return u, domain.Invalid("username", "obligatorio")
	}

	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM usuarios WHERE (username = ? OR (email <> '' AND email = ?)) AND id <> ?`,
		u.Username, u.Email, id).Scan(&exists); err != nil {
		return u, err
	}
	if exists > 0 {
		return u, domain.Conflict("usuario", "username o email ya registrado")
	}

	res, err := r.DB.Exec(`
		UPDATE usuarios
		SET username = ?, email = ?, rol = ?, activo = ?, updated_at = NOW()
		WHERE id = ?
	`, u.Username, u.Email, rol, u.Activo, id)
	if err != nil {
		return u, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return u, err
		}
	}
	return r.GetByID(id)
}

func (r UsuarioRepository) UpdatePassword(id int64, hash string) error {
	res, err := r.DB.Exec(`UPDATE usuarios SET password_hash = ?, updated_at = NOW() WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r UsuarioRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("usuario", sql.ErrNoRows)
	}
	return nil
}

// CrearReset registra un token de recuperación con vencimiento.
func (r UsuarioRepository) CrearReset(usuarioID int64, token string, expiresAt time.Time) error {
	_, err := r.DB.Exec(`
		INSERT INTO password_resets (usuario_id, token, expires_at, used, created_at)
		VALUES (?, ?, ?, 0, NOW())
	`, usuarioID, token, expiresAt)
	return err
}

// GetResetVigente devuelve el token si existe, no fue usado y no venció.
func (r UsuarioRepository) GetResetVigente(usuarioID int64, token string) (models.PasswordReset, error) {
	var pr models.PasswordReset
	err := r.DB.QueryRow(`
		SELECT id, usuario_id, token, DATE_FORMAT(expires_at, '%Y-%m-%d %H:%i:%s'), used
		FROM password_resets
		WHERE usuario_id = ? AND token = ? AND used = 0 AND expires_at > NOW()
		ORDER BY id DESC LIMIT 1
	`, usuarioID, token).Scan(&pr.ID, &pr.UsuarioID, &pr.Token, &pr.ExpiresAt, &pr.Used)
	if err == sql.ErrNoRows {
		return pr, domain.NotFound("token de recuperación", err)
	}
	return pr, err
}

func (r UsuarioRepository) MarcarResetUsado(id int64) error {
	_, err := r.DB.Exec(`UPDATE password_resets SET used = 1 WHERE id = ?`, id)
	return err
}
