package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger escribe una línea por request con el request_id, para poder
// cruzarla con los eventos de negocio que emite utils.LogEvent.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		log.Printf("[HTTP] request_id=%s %s %s status=%d latencia_ms=%.3f ip=%s usuario=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(inicio).Microseconds())/1000.0,
			c.ClientIP(),
			c.GetString(usernameKey),
		)
	}
}
