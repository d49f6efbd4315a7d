package utils

import (
	"log"
	"strings"
)

// LogEvent emite una línea de evento de negocio (cálculos, recibos, marcas).
// El mensaje debe ser un resumen: nunca montos por empleado ni datos de la ficha.
func LogEvent(requestID, modulo, accion, mensaje string) {
	log.Printf("[%s] accion=%s request_id=%s msg=%s",
		strings.ToUpper(modulo), accion, strings.TrimSpace(requestID), mensaje)
}
