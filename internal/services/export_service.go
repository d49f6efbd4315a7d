package services

import (
	"bytes"
	"fmt"
	"strconv"

	"nomina/internal/domain/models"
	"nomina/internal/repositories"
	"nomina/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService produce las descargas Excel y PDF de nómina y asistencia.
// Los loaders son inyectables para testear los builders sin base de datos.
type ExportService struct {
	Liquidaciones repositories.LiquidacionRepository
	Fichadas      repositories.FichadaRepository
	Reportes      ReportesService
	RequestID     string

	NominaLoader     func(mes, anio int) ([]models.Liquidacion, repositories.ResumenNomina, error)
	AsistenciaLoader func(mes, anio int, empleadoID int64) ([]models.Asistencia, error)
	AvanzadoLoader   func(mes, anio int, empleadoID int64) ([]FilaAvanzada, error)
}

func (s ExportService) cargarNomina(mes, anio int) ([]models.Liquidacion, repositories.ResumenNomina, error) {
	if s.NominaLoader != nil {
		return s.NominaLoader(mes, anio)
	}
	filas, err := s.Liquidaciones.ListPeriodo(mes, anio, 0)
	if err != nil {
		return nil, repositories.ResumenNomina{}, err
	}
	resumen, err := s.Liquidaciones.ResumenPeriodo(mes, anio)
	if err != nil {
		return nil, repositories.ResumenNomina{}, err
	}
	return filas, resumen, nil
}

func (s ExportService) cargarAsistencia(mes, anio int, empleadoID int64) ([]models.Asistencia, error) {
	if s.AsistenciaLoader != nil {
		return s.AsistenciaLoader(mes, anio, empleadoID)
	}
	return s.Fichadas.AsistenciasMensuales(mes, anio, empleadoID)
}

func (s ExportService) cargarAvanzado(mes, anio int, empleadoID int64) ([]FilaAvanzada, error) {
	if s.AvanzadoLoader != nil {
		return s.AvanzadoLoader(mes, anio, empleadoID)
	}
	return s.Reportes.Avanzado(mes, anio, empleadoID)
}

// NominaExcel genera la planilla del período.
func (s ExportService) NominaExcel(mes, anio int) ([]byte, string, error) {
	filas, resumen, err := s.cargarNomina(mes, anio)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Nomina"
	f.SetSheetName("Sheet1", sheet)

	encabezados := []string{"Empleado", "Mes", "Año", "Salario base", "Bonif. hijos", "IPS", "Total ingresos", "Total descuentos", "Neto a cobrar", "Cerrada"}
	for i, h := range encabezados {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, l := range filas {
		row := i + 2
		valores := []any{l.EmpleadoNombre, l.Mes, l.Anio, l.SalarioBase, l.BonificacionHijos,
			l.IPS, l.TotalIngresos, l.TotalDescuentos, l.NetoCobrar, boolSiNo(l.Cerrada)}
		for j, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	totalRow := len(filas) + 3
	f.SetCellValue(sheet, "A"+strconv.Itoa(totalRow), "TOTALES")
	f.SetCellValue(sheet, "G"+strconv.Itoa(totalRow), resumen.TotalIngresos)
	f.SetCellValue(sheet, "H"+strconv.Itoa(totalRow), resumen.TotalDescuentos)
	f.SetCellValue(sheet, "I"+strconv.Itoa(totalRow), resumen.TotalNeto)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "reportes", "excel_nomina", fmt.Sprintf("mes=%d anio=%d filas=%d", mes, anio, len(filas)))
	return buf.Bytes(), fmt.Sprintf("NOMINA_%02d_%d.xlsx", mes, anio), nil
}

// NominaPDF genera el reporte imprimible del período.
func (s ExportService) NominaPDF(mes, anio int) ([]byte, string, error) {
	filas, resumen, err := s.cargarNomina(mes, anio)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Reporte de Nomina", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr(fmt.Sprintf("REPORTE DE NÓMINA - %s %d", utils.NombreMes(mes), anio)))
	pdf.Ln(12)

	anchos := []float64{70, 35, 30, 40, 40, 40}
	cabecera := []string{"Empleado", "Salario base", "IPS", "Ingresos", "Descuentos", "Neto"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range cabecera {
		pdf.CellFormat(anchos[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range filas {
		pdf.CellFormat(anchos[0], 6, tr(l.EmpleadoNombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(anchos[1], 6, tr(utils.FormatGuaranies(l.SalarioBase)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[2], 6, tr(utils.FormatGuaranies(l.IPS)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[3], 6, tr(utils.FormatGuaranies(l.TotalIngresos)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[4], 6, tr(utils.FormatGuaranies(l.TotalDescuentos)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[5], 6, tr(utils.FormatGuaranies(l.NetoCobrar)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(anchos[0]+anchos[1]+anchos[2], 7, "TOTALES", "1", 0, "R", false, 0, "")
	pdf.CellFormat(anchos[3], 7, tr(utils.FormatGuaranies(resumen.TotalIngresos)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(anchos[4], 7, tr(utils.FormatGuaranies(resumen.TotalDescuentos)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(anchos[5], 7, tr(utils.FormatGuaranies(resumen.TotalNeto)), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "reportes", "pdf_nomina", fmt.Sprintf("mes=%d anio=%d filas=%d", mes, anio, len(filas)))
	return buf.Bytes(), fmt.Sprintf("NOMINA_%02d_%d.pdf", mes, anio), nil
}

// AvanzadoExcel exporta el detalle por empleado con el acumulado de aguinaldo.
func (s ExportService) AvanzadoExcel(mes, anio int, empleadoID int64) ([]byte, string, error) {
	filas, err := s.cargarAvanzado(mes, anio, empleadoID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Avanzado"
	f.SetSheetName("Sheet1", sheet)

	encabezados := []string{"Empleado", "Mes", "Año", "Salario base", "Neto", "Aguinaldo acumulado", "Aguinaldo proyectado"}
	for i, h := range encabezados {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, fila := range filas {
		row := i + 2
		valores := []any{fila.EmpleadoNombre, fila.Mes, fila.Anio, fila.SalarioBase,
			fila.NetoCobrar, fila.AguinaldoAcumulado, fila.AguinaldoProyectado}
		for j, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("NOMINA_AVANZADO_%02d_%d.xlsx", mes, anio), nil
}

// AvanzadoPDF exporta el mismo detalle en formato imprimible.
func (s ExportService) AvanzadoPDF(mes, anio int, empleadoID int64) ([]byte, string, error) {
	filas, err := s.cargarAvanzado(mes, anio, empleadoID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Reporte Avanzado", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr(fmt.Sprintf("REPORTE AVANZADO - %s %d", utils.NombreMes(mes), anio)))
	pdf.Ln(12)

	anchos := []float64{75, 40, 45, 50, 50}
	cabecera := []string{"Empleado", "Salario base", "Neto", "Aguinaldo acum.", "Aguinaldo proy."}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range cabecera {
		pdf.CellFormat(anchos[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, fila := range filas {
		pdf.CellFormat(anchos[0], 6, tr(fila.EmpleadoNombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(anchos[1], 6, tr(utils.FormatGuaranies(fila.SalarioBase)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[2], 6, tr(utils.FormatGuaranies(fila.NetoCobrar)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[3], 6, tr(utils.FormatGuaranies(fila.AguinaldoAcumulado)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(anchos[4], 6, tr(utils.FormatGuaranies(fila.AguinaldoProyectado)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("NOMINA_AVANZADO_%02d_%d.pdf", mes, anio), nil
}

// AsistenciaExcel exporta la asistencia diaria del mes.
func (s ExportService) AsistenciaExcel(mes, anio int, empleadoID int64) ([]byte, string, error) {
	filas, err := s.cargarAsistencia(mes, anio, empleadoID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Asistencia"
	f.SetSheetName("Sheet1", sheet)

	encabezados := []string{"Empleado", "Fecha", "Entrada", "Salida", "Horas"}
	for i, h := range encabezados {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, a := range filas {
		row := i + 2
		valores := []any{a.EmpleadoNombre, a.Fecha, a.Entrada, a.Salida, a.Horas}
		for j, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "asistencia", "excel", fmt.Sprintf("mes=%d anio=%d filas=%d", mes, anio, len(filas)))
	return buf.Bytes(), fmt.Sprintf("ASISTENCIA_%02d_%d.xlsx", mes, anio), nil
}

// AsistenciaPDF exporta la asistencia diaria del mes en PDF.
func (s ExportService) AsistenciaPDF(mes, anio int, empleadoID int64) ([]byte, string, error) {
	filas, err := s.cargarAsistencia(mes, anio, empleadoID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reporte de Asistencia", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr(fmt.Sprintf("ASISTENCIA - %s %d", utils.NombreMes(mes), anio)))
	pdf.Ln(12)

	anchos := []float64{65, 30, 30, 30, 25}
	cabecera := []string{"Empleado", "Fecha", "Entrada", "Salida", "Horas"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range cabecera {
		pdf.CellFormat(anchos[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range filas {
		pdf.CellFormat(anchos[0], 6, tr(a.EmpleadoNombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(anchos[1], 6, a.Fecha, "1", 0, "C", false, 0, "")
		pdf.CellFormat(anchos[2], 6, a.Entrada, "1", 0, "C", false, 0, "")
		pdf.CellFormat(anchos[3], 6, a.Salida, "1", 0, "C", false, 0, "")
		pdf.CellFormat(anchos[4], 6, fmt.Sprintf("%.2f", a.Horas), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "asistencia", "pdf", fmt.Sprintf("mes=%d anio=%d filas=%d", mes, anio, len(filas)))
	return buf.Bytes(), fmt.Sprintf("ASISTENCIA_%02d_%d.pdf", mes, anio), nil
}

func boolSiNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}
