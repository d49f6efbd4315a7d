package services

import (
	"strconv"
	"strings"
	"time"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"
	"nomina/internal/utils"
)

// ReportesService arma los reportes y analíticas de nómina.
type ReportesService struct {
	Liquidaciones repositories.LiquidacionRepository
	Empleados     repositories.EmpleadoRepository
	RequestID     string
}

// ReporteGeneral son las filas y totales del período que pinta la pantalla
// de reportes.
type ReporteGeneral struct {
	Mes     int                        `json:"mes"`
	Anio    int                        `json:"anio"`
	Periodo string                     `json:"periodo"`
	Filas   []models.Liquidacion       `json:"filas"`
	Resumen repositories.ResumenNomina `json:"resumen"`
}

func (s ReportesService) General(mes, anio int) (ReporteGeneral, error) {
	if mes < 1 || mes > 12 {
		return ReporteGeneral{}, domain.Invalid("mes", "debe estar entre 1 y 12")
	}

	filas, err := s.Liquidaciones.ListPeriodo(mes, anio, 0)
	if err != nil {
		return ReporteGeneral{}, err
	}
	resumen, err := s.Liquidaciones.ResumenPeriodo(mes, anio)
	if err != nil {
		return ReporteGeneral{}, err
	}

	return ReporteGeneral{
		Mes:     mes,
		Anio:    anio,
		Periodo: utils.NombreMes(mes) + " " + strconv.Itoa(anio),
		Filas:   filas,
		Resumen: resumen,
	}, nil
}

// KPIsNomina alimenta las tarjetas y el gráfico de evolución anual.
type KPIsNomina struct {
	KPIs      repositories.ResumenNomina  `json:"kpis"`
	Evolucion []repositories.EvolucionMes `json:"evolucion"`
}

// KPIs recibe el período como "YYYY-MM"; vacío usa el mes corriente.
func (s ReportesService) KPIs(periodo string) (KPIsNomina, error) {
	mes, anio, err := parsePeriodoMes(periodo)
	if err != nil {
		return KPIsNomina{}, err
	}

	kpis, err := s.Liquidaciones.ResumenPeriodo(mes, anio)
	if err != nil {
		return KPIsNomina{}, err
	}
	evolucion, err := s.Liquidaciones.EvolucionAnual(anio)
	if err != nil {
		return KPIsNomina{}, err
	}
	return KPIsNomina{KPIs: kpis, Evolucion: evolucion}, nil
}

func parsePeriodoMes(periodo string) (int, int, error) {
	periodo = strings.TrimSpace(periodo)
	if periodo == "" {
		now := time.Now()
		return int(now.Month()), now.Year(), nil
	}
	t, err := time.Parse("2006-01", periodo)
	if err != nil {
		return 0, 0, domain.Invalid("mes", "formato esperado YYYY-MM")
	}
	return int(t.Month()), t.Year(), nil
}

// FilaAvanzada es el detalle por empleado del reporte avanzado, con el
// acumulado computable para aguinaldo del año.
type FilaAvanzada struct {
	models.Liquidacion
	AguinaldoAcumulado  int64 `json:"aguinaldo_acumulado"`
	AguinaldoProyectado int64 `json:"aguinaldo_proyectado"`
}

// Avanzado agrega a cada liquidación del período el acumulado de aguinaldo.
// El proyectado es el acumulado dividido 12.
func (s ReportesService) Avanzado(mes, anio int, empleadoID int64) ([]FilaAvanzada, error) {
	if mes < 1 || mes > 12 {
		return nil, domain.Invalid("mes", "debe estar entre 1 y 12")
	}

	liqs, err := s.Liquidaciones.ListPeriodo(mes, anio, empleadoID)
	if err != nil {
		return nil, err
	}

	out := []FilaAvanzada{}
	for _, l := range liqs {
		acumulado, err := s.Liquidaciones.AcumuladoAguinaldo(l.EmpleadoID, anio)
		if err != nil {
			return nil, err
		}
		out = append(out, FilaAvanzada{
			Liquidacion:         l,
			AguinaldoAcumulado:  acumulado,
			AguinaldoProyectado: acumulado / 12,
		})
	}
	return out, nil
}
