package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/jhoicas/marketing-tracker/internal/application/notify"
	"gopkg.in/gomail.v2"
)

var _ notify.MailSender = (*EmailSender)(nil)

// EmailSender envía los digests de recordatorio por SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewEmailSender construye el sender con la configuración SMTP.
func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{Host: host, Port: port, User: user, Password: password, From: from}
}

var digestTmpl = template.Must(template.New("digest").Parse(
	`Hola {{.Name}},

Tienes {{len .Items}} follow-up(s) programados para los próximos días:

{{range .Items}}- {{.ProspectName}} — {{.NextFollowupDate.Format "2006-01-02"}}: {{.NextAction}}
{{end}}
-- {{.AppName}}
`))

// SendFollowupDigest envía a un marketer el resumen de sus follow-ups próximos.
func (s *EmailSender) SendFollowupDigest(d notify.Digest) error {
	var body bytes.Buffer
	if err := digestTmpl.Execute(&body, d); err != nil {
		return fmt.Errorf("procesar plantilla de digest: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", d.To)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Follow-ups próximos", d.AppName))
	m.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo SMTP: %w", err)
	}
	return nil
}
