package services

import (
	"fmt"
	"time"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"
	"nomina/internal/utils"
)

// AsistenciaService maneja la marcación de entrada y salida.
type AsistenciaService struct {
	Empleados repositories.EmpleadoRepository
	Fichadas  repositories.FichadaRepository
	Ahora     func() time.Time
	RequestID string
}

func (s AsistenciaService) ahora() time.Time {
	if s.Ahora != nil {
		return s.Ahora()
	}
	return time.Now()
}

// Marcar registra una fichada del usuario autenticado. La secuencia válida
// en un día es ENTRADA, SALIDA, ENTRADA, ... sin repetir tipo.
func (s AsistenciaService) Marcar(usuarioID int64, tipo string) (models.Fichada, error) {
	if tipo != models.FichadaEntrada && tipo != models.FichadaSalida {
		return models.Fichada{}, domain.Invalid("tipo", "debe ser ENTRADA o SALIDA")
	}

	emp, err := s.Empleados.GetByUsuarioID(usuarioID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Fichada{}, domain.Invalid("empleado", "el usuario no tiene ficha de empleado")
		}
		return models.Fichada{}, err
	}

	now := s.ahora()
	fecha := utils.FormatDate(now)

	ultima, err := s.Fichadas.UltimaDelDia(emp.ID, fecha)
	switch {
	case err == nil:
		if ultima.Tipo == tipo {
			if tipo == models.FichadaEntrada {
				return models.Fichada{}, domain.Conflict("fichada", "ya existe una entrada sin salida hoy")
			}
			return models.Fichada{}, domain.Conflict("fichada", "ya existe una salida registrada hoy")
		}
	case domain.IsNotFound(err):
		if tipo == models.FichadaSalida {
			return models.Fichada{}, domain.Conflict("fichada", "no hay entrada registrada hoy")
		}
	default:
		return models.Fichada{}, err
	}

	f, err := s.Fichadas.Create(models.Fichada{
		EmpleadoID: emp.ID,
		Fecha:      fecha,
		Hora:       utils.FormatTime(now),
		Tipo:       tipo,
	})
	if err != nil {
		return models.Fichada{}, err
	}

	utils.LogEvent(s.RequestID, "asistencia", "marcar",
		fmt.Sprintf("empleado_id=%d tipo=%s fecha=%s hora=%s", emp.ID, tipo, f.Fecha, f.Hora))
	return f, nil
}
