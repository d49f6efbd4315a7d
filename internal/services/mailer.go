package services

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"nomina/internal/config"
	"nomina/internal/utils"
)

// Mailer abstrae el envío de correos para poder simularlo en tests y
// para que el sistema funcione sin SMTP configurado.
type Mailer interface {
	Send(to, subject, body string, adjunto []byte, nombreAdjunto string) error
}

// NewMailer devuelve un mailer SMTP si hay host configurado; si no, uno
// que solo deja registro en el log.
func NewMailer(env config.Env) Mailer {
	if env.SMTPHost == "" {
		return LogMailer{}
	}
	return SMTPMailer{
		Host: env.SMTPHost,
		Port: env.SMTPPort,
		User: env.SMTPUser,
		Pass: env.SMTPPass,
		From: env.MailFrom,
	}
}

// SMTPMailer envía por SMTP con autenticación PLAIN. Los adjuntos van en
// un multipart/mixed armado a mano.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (m SMTPMailer) Send(to, subject, body string, adjunto []byte, nombreAdjunto string) error {
	var msg strings.Builder
	boundary := "=-nomina-adjunto-="

	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")

	if len(adjunto) == 0 {
		msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		msg.WriteString(body)
	} else {
		fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary)

		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		msg.WriteString(body)
		msg.WriteString("\r\n")

		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: application/pdf\r\n")
		msg.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&msg, "Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", nombreAdjunto)

		encoded := base64.StdEncoding.EncodeToString(adjunto)
		for len(encoded) > 76 {
			msg.WriteString(encoded[:76])
			msg.WriteString("\r\n")
			encoded = encoded[76:]
		}
		msg.WriteString(encoded)
		fmt.Fprintf(&msg, "\r\n--%s--\r\n", boundary)
	}

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg.String()))
}

// LogMailer no envía nada; deja constancia en el log. Útil en desarrollo.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string, adjunto []byte, _ string) error {
	utils.LogEvent("", "mail", "simulado",
		fmt.Sprintf("destino=%s asunto=%q adjunto_bytes=%d", to, subject, len(adjunto)))
	return nil
}
