package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04:05"
	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatTime formats time to HH:MM:SS in local timezone.
func FormatTime(t time.Time) string {
	return t.In(time.Local).Format(layoutTime)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// FinDePeriodo returns the last instant of the month used as the cutoff for
// age checks in the bonificación familiar.
func FinDePeriodo(mes, anio int) time.Time {
	primero := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.Local)
	return primero.AddDate(0, 1, 0).Add(-time.Second)
}

// PeriodoActual returns the current month and year.
func PeriodoActual() (int, int) {
	now := time.Now()
	return int(now.Month()), now.Year()
}

// NombreMes returns the Spanish month name for headers in reports.
func NombreMes(mes int) string {
	nombres := []string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if mes < 1 || mes > 12 {
		return ""
	}
	return nombres[mes-1]
}
