package services

import (
	"bytes"
	"testing"

	"nomina/internal/domain/models"
	"nomina/internal/repositories"
)

func exportServiceTest() ExportService {
	return ExportService{
		NominaLoader: func(mes, anio int) ([]models.Liquidacion, repositories.ResumenNomina, error) {
			filas := []models.Liquidacion{
				{ID: 1, EmpleadoNombre: "Ana Gómez", Mes: mes, Anio: anio,
					SalarioBase: 3000000, IPS: 270000, TotalIngresos: 3000000,
					TotalDescuentos: 270000, NetoCobrar: 2730000},
				{ID: 2, EmpleadoNombre: "Juan Pérez", Mes: mes, Anio: anio,
					SalarioBase: 2500000, IPS: 225000, TotalIngresos: 2500000,
					TotalDescuentos: 225000, NetoCobrar: 2275000, Cerrada: true},
			}
			resumen := repositories.ResumenNomina{
				Cantidad: 2, Cerradas: 1,
				TotalIngresos: 5500000, TotalDescuentos: 495000, TotalNeto: 5005000,
			}
			return filas, resumen, nil
		},
		AsistenciaLoader: func(mes, anio int, empleadoID int64) ([]models.Asistencia, error) {
			return []models.Asistencia{
				{EmpleadoID: 1, EmpleadoNombre: "Ana Gómez", Fecha: "2025-06-02",
					Entrada: "08:01:00", Salida: "17:03:00", Horas: 9.03},
				{EmpleadoID: 1, EmpleadoNombre: "Ana Gómez", Fecha: "2025-06-03",
					Entrada: "08:00:00", Salida: "", Horas: 0},
			}, nil
		},
		AvanzadoLoader: func(mes, anio int, empleadoID int64) ([]FilaAvanzada, error) {
			return []FilaAvanzada{
				{
					Liquidacion: models.Liquidacion{ID: 1, EmpleadoNombre: "Ana Gómez",
						Mes: mes, Anio: anio, SalarioBase: 3000000, NetoCobrar: 2730000},
					AguinaldoAcumulado:  18000000,
					AguinaldoProyectado: 1500000,
				},
			}, nil
		},
	}
}

func TestNominaExcel(t *testing.T) {
	contenido, nombre, err := exportServiceTest().NominaExcel(6, 2025)
	if err != nil {
		t.Fatalf("NominaExcel returned error: %v", err)
	}
	if nombre != "NOMINA_06_2025.xlsx" {
		t.Fatalf("unexpected filename: %s", nombre)
	}
	// firma ZIP de un xlsx
	if !bytes.HasPrefix(contenido, []byte("PK")) {
		t.Fatalf("content does not look like an xlsx file")
	}
}

func TestNominaPDF(t *testing.T) {
	contenido, nombre, err := exportServiceTest().NominaPDF(6, 2025)
	if err != nil {
		t.Fatalf("NominaPDF returned error: %v", err)
	}
	if nombre != "NOMINA_06_2025.pdf" {
		t.Fatalf("unexpected filename: %s", nombre)
	}
	if !bytes.HasPrefix(contenido, []byte("%PDF")) {
		t.Fatalf("content does not look like a PDF")
	}
}

func TestAsistenciaExports(t *testing.T) {
	svc := exportServiceTest()

	xlsx, _, err := svc.AsistenciaExcel(6, 2025, 0)
	if err != nil || len(xlsx) == 0 {
		t.Fatalf("AsistenciaExcel failed: %v", err)
	}
	pdf, _, err := svc.AsistenciaPDF(6, 2025, 0)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("AsistenciaPDF failed: %v", err)
	}
}

func TestAvanzadoExports(t *testing.T) {
	svc := exportServiceTest()

	xlsx, nombre, err := svc.AvanzadoExcel(6, 2025, 0)
	if err != nil || len(xlsx) == 0 {
		t.Fatalf("AvanzadoExcel failed: %v", err)
	}
	if nombre != "NOMINA_AVANZADO_06_2025.xlsx" {
		t.Fatalf("unexpected filename: %s", nombre)
	}
	pdf, _, err := svc.AvanzadoPDF(6, 2025, 0)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("AvanzadoPDF failed: %v", err)
	}
}
