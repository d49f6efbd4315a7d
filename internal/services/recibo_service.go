package services

import (
	"bytes"
	"fmt"
	"strings"

	"nomina/internal/domain"
	"nomina/internal/domain/models"
	"nomina/internal/repositories"
	"nomina/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReciboService genera el recibo de salario en PDF y lo envía por correo.
type ReciboService struct {
	Liquidaciones repositories.LiquidacionRepository
	Empleados     repositories.EmpleadoRepository
	Mailer        Mailer
	RequestID     string
	Loader        func(int64) (reciboData, error)
}

type reciboData struct {
	LiquidacionID   int64
	Empleado        string
	Cedula          string
	Email           string
	Mes             int
	Anio            int
	Base            int64
	Bonificacion    int64
	IPS             int64
	Ingresos        []models.LiquidacionDetalle
	Descuentos      []models.LiquidacionDetalle
	TotalIngresos   int64
	TotalDescuentos int64
	Neto            int64
	CalculadaEn     string
}

// GenerarRecibo arma el PDF del recibo; la liquidación debe estar calculada.
func (s ReciboService) GenerarRecibo(liquidacionID int64) ([]byte, string, error) {
	data, err := s.loadReciboData(liquidacionID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "recibos", "generar", fmt.Sprintf("liquidacion_id=%d", liquidacionID))
	return buildReciboPDF(data)
}

// EnviarRecibo genera el PDF y lo manda al correo del empleado.
func (s ReciboService) EnviarRecibo(liquidacionID int64) (string, error) {
	data, err := s.loadReciboData(liquidacionID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(data.Email) == "" {
		return "", domain.Invalid("email", "el empleado no tiene correo registrado")
	}

	pdfBytes, filename, err := buildReciboPDF(data)
	if err != nil {
		return "", err
	}

	asunto := fmt.Sprintf("Recibo de salario %s %d", utils.NombreMes(data.Mes), data.Anio)
	cuerpo := fmt.Sprintf(
		"Estimado/a %s:\n\nAdjuntamos su recibo de salario del período %s %d.\nNeto a cobrar: %s.\n\nSaludos,\nRecursos Humanos",
		data.Empleado, utils.NombreMes(data.Mes), data.Anio, utils.FormatGuaranies(data.Neto))

	if err := s.Mailer.Send(data.Email, asunto, cuerpo, pdfBytes, filename); err != nil {
		return "", domain.Internal("no se pudo enviar el recibo", err)
	}

	utils.LogEvent(s.RequestID, "recibos", "enviar",
		fmt.Sprintf("liquidacion_id=%d destino=%s", liquidacionID, data.Email))
	return data.Email, nil
}

func (s ReciboService) loadReciboData(liquidacionID int64) (reciboData, error) {
	if s.Loader != nil {
		return s.Loader(liquidacionID)
	}

	var out reciboData
	liq, err := s.Liquidaciones.GetByID(liquidacionID)
	if err != nil {
		return out, err
	}
	if liq.CalculadaEn == "" {
		return out, domain.Conflict("liquidación", "todavía no fue calculada")
	}

	emp, err := s.Empleados.GetByID(liq.EmpleadoID)
	if err != nil {
		return out, err
	}
	detalles, err := s.Liquidaciones.GetDetalles(liquidacionID)
	if err != nil {
		return out, err
	}

	out = reciboData{
		LiquidacionID:   liq.ID,
		Empleado:        fmt.Sprintf("%s %s", emp.Nombre, emp.Apellido),
		Cedula:          emp.Cedula,
		Email:           emp.Email,
		Mes:             liq.Mes,
		Anio:            liq.Anio,
		Base:            liq.SalarioBase,
		Bonificacion:    liq.BonificacionHijos,
		IPS:             liq.IPS,
		TotalIngresos:   liq.TotalIngresos,
		TotalDescuentos: liq.TotalDescuentos,
		Neto:            liq.NetoCobrar,
		CalculadaEn:     liq.CalculadaEn,
	}
	for _, d := range detalles {
		if d.EsDebito {
			out.Descuentos = append(out.Descuentos, d)
		} else {
			out.Ingresos = append(out.Ingresos, d)
		}
	}
	return out, nil
}

func buildReciboPDF(d reciboData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo de Salario", false)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("RECIBO DE SALARIO"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Período: %s %d", utils.NombreMes(d.Mes), d.Anio)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Empleado: "+d.Empleado))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Cédula: "+d.Cedula))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Calculada: "+d.CalculadaEn))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ingresos")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	reciboLinea(pdf, tr, "Salario base", d.Base)
	if d.Bonificacion > 0 {
		reciboLinea(pdf, tr, "Bonificación familiar", d.Bonificacion)
	}
	for _, det := range d.Ingresos {
		reciboLinea(pdf, tr, det.Descripcion, det.Monto)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Descuentos")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	reciboLinea(pdf, tr, "Aporte IPS (9%)", d.IPS)
	for _, det := range d.Descuentos {
		reciboLinea(pdf, tr, det.Descripcion, det.Monto)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	reciboLinea(pdf, tr, "Total ingresos", d.TotalIngresos)
	reciboLinea(pdf, tr, "Total descuentos", d.TotalDescuentos)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 14)
	reciboLinea(pdf, tr, "NETO A COBRAR", d.Neto)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr("Recibí conforme el importe neto indicado en concepto de remuneración del período."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECIBO_%d_%02d_%d.pdf", d.LiquidacionID, d.Mes, d.Anio)
	return buf.Bytes(), filename, nil
}

func reciboLinea(pdf *gofpdf.Fpdf, tr func(string) string, etiqueta string, monto int64) {
	pdf.Cell(120, 6, tr(etiqueta))
	pdf.CellFormat(0, 6, tr(utils.FormatGuaranies(monto)), "", 0, "R", false, 0, "")
	pdf.Ln(6)
}
