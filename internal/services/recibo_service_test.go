package services

import (
	"testing"

	"nomina/internal/domain/models"
)

type mailerFake struct {
	destino string
	asunto  string
	adjunto []byte
	nombre  string
}

func (m *mailerFake) Send(to, subject, _ string, adjunto []byte, nombre string) error {
	m.destino = to
	m.asunto = subject
	m.adjunto = adjunto
	m.nombre = nombre
	return nil
}

func reciboLoaderTest(email string) func(int64) (reciboData, error) {
	conceptoID := int64(3)
	return func(id int64) (reciboData, error) {
		return reciboData{
			LiquidacionID: id,
			Empleado:      "Ana Gómez",
			Cedula:        "1234567",
			Email:         email,
			Mes:           6,
			Anio:          2025,
			Base:          3000000,
			Bonificacion:  139915,
			IPS:           270000,
			Ingresos: []models.LiquidacionDetalle{
				{ConceptoID: &conceptoID, Descripcion: "Horas extra", Monto: 500000},
			},
			Descuentos: []models.LiquidacionDetalle{
				{Descripcion: "Adelanto", EsDebito: true, Monto: 400000},
			},
			TotalIngresos:   3639915,
			TotalDescuentos: 670000,
			Neto:            2969915,
			CalculadaEn:     "2025-06-30 18:00:00",
		}, nil
	}
}

func TestGenerarRecibo(t *testing.T) {
	svc := ReciboService{Loader: reciboLoaderTest("ana@example.com")}

	pdf, nombre, err := svc.GenerarRecibo(42)
	if err != nil {
		t.Fatalf("GenerarRecibo returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerarRecibo returned empty PDF")
	}
	if nombre != "RECIBO_42_06_2025.pdf" {
		t.Fatalf("unexpected filename: %s", nombre)
	}
}

func TestEnviarRecibo(t *testing.T) {
	mailer := &mailerFake{}
	svc := ReciboService{Loader: reciboLoaderTest("ana@example.com"), Mailer: mailer}

	destino, err := svc.EnviarRecibo(42)
	if err != nil {
		t.Fatalf("EnviarRecibo returned error: %v", err)
	}
	if destino != "ana@example.com" || mailer.destino != "ana@example.com" {
		t.Fatalf("unexpected destination: %s / %s", destino, mailer.destino)
	}
	if len(mailer.adjunto) == 0 || mailer.nombre == "" {
		t.Fatalf("mail should carry the PDF attachment")
	}
}

func TestEnviarReciboSinEmail(t *testing.T) {
	svc := ReciboService{Loader: reciboLoaderTest(""), Mailer: &mailerFake{}}

	if _, err := svc.EnviarRecibo(42); err == nil {
		t.Fatalf("expected error when empleado has no email")
	}
}
