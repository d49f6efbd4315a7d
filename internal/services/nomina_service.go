package services

import (
	"fmt"
	"time"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"
	"nomina/internal/utils"

	"github.com/shopspring/decimal"
)

// ParametrosNomina concentra los valores legales del cálculo.
type ParametrosNomina struct {
	// SalarioMinimo vigente, en guaraníes.
	SalarioMinimo int64
	// TasaIPS es el aporte obrero sobre el imponible (9%).
	TasaIPS decimal.Decimal
	// TasaBonificacion es la asignación familiar por hijo (5% del mínimo).
	TasaBonificacion decimal.Decimal
}

// ParametrosVigentes arma los parámetros con las tasas legales fijas.
func ParametrosVigentes(salarioMinimo int64) ParametrosNomina {
	return ParametrosNomina{
		SalarioMinimo:    salarioMinimo,
		TasaIPS:          decimal.New(9, -2),
		TasaBonificacion: decimal.New(5, -2),
	}
}

// NominaService ejecuta el cálculo de liquidaciones.
type NominaService struct {
	Empleados     repositories.EmpleadoRepository
	Asignaciones  repositories.AsignacionRepository
	Liquidaciones repositories.LiquidacionRepository
	Params        ParametrosNomina
	RequestID     string
}

// CalcularDesglose es el cálculo puro: no toca la base de datos.
// Devuelve el desglose y los IDs de asignaciones no recurrentes que un
// cálculo persistido debe consumir.
func CalcularDesglose(emp models.Empleado, asigs []models.Asignacion, cierre time.Time, params ParametrosNomina) (models.ResultadoCalculo, []int64) {
	res := models.ResultadoCalculo{
		Empleado:   fmt.Sprintf("%s %s", emp.Nombre, emp.Apellido),
		EmpleadoID: emp.ID,
		Base:       emp.SalarioBase,
		Ingresos:   []models.LiquidacionDetalle{},
		Descuentos: []models.LiquidacionDetalle{},
	}

	res.BonificacionHijos = bonificacionFamiliar(emp.Hijos, cierre, params)

	// El imponible IPS arranca en el salario base; la bonificación familiar
	// no aporta.
	imponible := decimal.NewFromInt(emp.SalarioBase)

	consumidas := []int64{}
	var extrasIngresos, extrasDescuentos int64
	for _, a := range asigs {
		conceptoID := a.ConceptoID
		d := models.LiquidacionDetalle{
			ConceptoID:  &conceptoID,
			Descripcion: a.ConceptoDescripcion,
			EsDebito:    a.EsDebito,
			Monto:       a.Monto,
		}
		if a.EsDebito {
			extrasDescuentos += a.Monto
			res.Descuentos = append(res.Descuentos, d)
		} else {
			extrasIngresos += a.Monto
			res.Ingresos = append(res.Ingresos, d)
			if a.AfectaIPS {
				imponible = imponible.Add(decimal.NewFromInt(a.Monto))
			}
		}
		if !a.EsRecurrente {
			consumidas = append(consumidas, a.ID)
		}
	}

	res.IPS = imponible.Mul(params.TasaIPS).Round(0).IntPart()

	res.TotalIngresos = res.Base + res.BonificacionHijos + extrasIngresos
	res.TotalDescuentos = res.IPS + extrasDescuentos
	res.Total = res.TotalIngresos - res.TotalDescuentos
	return res, consumidas
}

// bonificacionFamiliar paga 5% del salario mínimo por cada hijo menor de 18
// al cierre del período que resida en el país.
func bonificacionFamiliar(hijos []models.Hijo, cierre time.Time, params ParametrosNomina) int64 {
	porHijo := decimal.NewFromInt(params.SalarioMinimo).Mul(params.TasaBonificacion).Round(0).IntPart()

	var total int64
	for _, h := range hijos {
		if !h.ResidePY {
			continue
		}
		nacimiento, err := utils.ParseDate(h.FechaNacimiento)
		if err != nil {
			continue
		}
		if nacimiento.AddDate(18, 0, 0).After(cierre) {
			total += porHijo
		}
	}
	return total
}

// CalcularPreview corre el cálculo del período indicado sin persistir nada.
func (s NominaService) CalcularPreview(empleadoID int64, mes, anio int) (models.ResultadoCalculo, error) {
	emp, err := s.Empleados.GetByID(empleadoID)
	if err != nil {
		return models.ResultadoCalculo{}, err
	}
	asigs, err := s.Asignaciones.ListActivasPorEmpleado(empleadoID)
	if err != nil {
		return models.ResultadoCalculo{}, err
	}
	res, _ := CalcularDesglose(emp, asigs, utils.FinDePeriodo(mes, anio), s.Params)
	return res, nil
}

// Calcular ejecuta y persiste el cálculo de una liquidación abierta.
func (s NominaService) Calcular(liquidacionID int64) (models.ResultadoCalculo, error) {
	liq, err := s.Liquidaciones.GetByID(liquidacionID)
	if err != nil {
		return models.ResultadoCalculo{}, err
	}
	if liq.Cerrada {
		return models.ResultadoCalculo{}, domain.Conflict("liquidación", "está cerrada")
	}

	emp, err := s.Empleados.GetByID(liq.EmpleadoID)
	if err != nil {
		return models.ResultadoCalculo{}, err
	}
	asigs, err := s.Asignaciones.ListActivasPorEmpleado(liq.EmpleadoID)
	if err != nil {
		return models.ResultadoCalculo{}, err
	}

	res, consumidas := CalcularDesglose(emp, asigs, utils.FinDePeriodo(liq.Mes, liq.Anio), s.Params)
	if err := s.Liquidaciones.GuardarCalculo(liquidacionID, res, consumidas); err != nil {
		return models.ResultadoCalculo{}, err
	}

	utils.LogEvent(s.RequestID, "nomina", "calcular",
		fmt.Sprintf("liquidacion_id=%d empleado_id=%d neto=%d", liquidacionID, emp.ID, res.Total))
	return res, nil
}

// ResultadoLote resume un proceso masivo: los errores por ítem no frenan
// el resto del lote.
type ResultadoLote struct {
	Calculadas int      `json:"calculadas"`
	Errores    []string `json:"errores"`
}

// CalcularTodas recalcula todas las liquidaciones abiertas del período.
func (s NominaService) CalcularTodas(mes, anio int) (ResultadoLote, error) {
	abiertas, err := s.Liquidaciones.ListAbiertas(mes, anio)
	if err != nil {
		return ResultadoLote{}, err
	}

	out := ResultadoLote{Errores: []string{}}
	for _, liq := range abiertas {
		if _, err := s.Calcular(liq.ID); err != nil {
			out.Errores = append(out.Errores, fmt.Sprintf("liquidación %d: %v", liq.ID, err))
			continue
		}
		out.Calculadas++
	}
	return out, nil
}

// CalcularPeriodo garantiza una liquidación por empleado activo y luego
// calcula las abiertas del período.
func (s NominaService) CalcularPeriodo(mes, anio int) (ResultadoLote, error) {
	if mes < 1 || mes > 12 {
		return ResultadoLote{}, domain.Invalid("mes", "debe estar entre 1 y 12")
	}

	activos, err := s.Empleados.ListActivos()
	if err != nil {
		return ResultadoLote{}, err
	}

	out := ResultadoLote{Errores: []string{}}
	for _, emp := range activos {
		exists, err := s.Liquidaciones.ExistePeriodo(emp.ID, mes, anio)
		if err != nil {
			out.Errores = append(out.Errores, fmt.Sprintf("empleado %d: %v", emp.ID, err))
			continue
		}
		if !exists {
			if _, err := s.Liquidaciones.Create(models.Liquidacion{EmpleadoID: emp.ID, Mes: mes, Anio: anio}); err != nil {
				out.Errores = append(out.Errores, fmt.Sprintf("empleado %d: %v", emp.ID, err))
				continue
			}
		}
	}

	lote, err := s.CalcularTodas(mes, anio)
	if err != nil {
		return out, err
	}
	lote.Errores = append(out.Errores, lote.Errores...)
	return lote, nil
}
