package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/config"
)

// Mailer sends receipt emails with PDF attachments over plain-auth SMTP.
type Mailer struct {
	from     string
	host     string
	addr     string
	user     string
	password string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from:     fmt.Sprintf("%s <%s>", cfg.NombreNegocio, cfg.SMTPUser),
		host:     cfg.SMTPHost,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
	}
}

// SendRecibo mails the receipt to the customer, attaching the PDF when a
// path is given.
func (m *Mailer) SendRecibo(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: adjuntar PDF: %w", err)
		}
	}

	return e.Send(m.addr, smtp.PlainAuth("", m.user, m.password, m.host))
}
