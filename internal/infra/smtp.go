package infra

import (
	"fmt"
	"net/smtp"

	"puntoventa/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending stock alert emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendAlertaStock notifies the configured address that a product fell below
// its minimum stock.
func (m *Mailer) SendAlertaStock(to, codigo, nombre string, stock, minimo int) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Stock bajo: %s %s", codigo, nombre)
	e.Text = []byte(fmt.Sprintf(
		"El producto %s (%s) quedó con %d unidades, por debajo del mínimo de %d.\nReponer stock.",
		nombre, codigo, stock, minimo,
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
