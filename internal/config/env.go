package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env agrupa la configuración de proceso. Se carga una sola vez en el arranque.
type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	JWTSecret       string
	AccessTTLHours  int
	RefreshTTLHours int

	CORSOrigins []string

	// Parámetros legales de nómina (guaraníes enteros).
	SalarioMinimo int64

	// SMTP opcional para recibos y recuperación de contraseña.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	// URL del frontend para armar enlaces de reset de contraseña.
	FrontendURL string
}

// Current queda disponible para handlers que no reciben Env por parámetro.
var Current Env

func LoadEnv() Env {
	// .env es opcional; en producción las variables vienen del entorno.
	_ = godotenv.Load()

	env := Env{
		AppAddr:         getenv("APP_ADDR", ":8000"),
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:           getenv("DB_DSN", "root:@tcp(127.0.0.1:3306)/nomina?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		JWTSecret:       getenv("JWT_SECRET", "cambiar-este-secreto"),
		AccessTTLHours:  getenvInt("ACCESS_TTL_HOURS", 8),
		RefreshTTLHours: getenvInt("REFRESH_TTL_HOURS", 72),
		SalarioMinimo:   getenvInt64("SALARIO_MINIMO", 2798309),
		SMTPHost:        strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:        getenv("SMTP_PORT", "587"),
		SMTPUser:        strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		MailFrom:        getenv("MAIL_FROM", "nomina@localhost"),
		FrontendURL:     getenv("FRONTEND_URL", "http://localhost:5173"),
	}

	origins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if origins == "" {
		env.CORSOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	Current = env
	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64); err == nil {
		return v
	}
	return fallback
}
