// Package mailer sends password reset mails over SMTP. Sending is best
// effort, when SMTP is not configured the caller falls back to returning the
// reset token in the API response.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/appz-budget/backend/internal/config"
)

type Mailer struct {
	cfg config.Config
}

func New(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPHost != ""
}

// SendPasswordReset mails the reset token to the user.
func (m *Mailer) SendPasswordReset(to, token string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password Reset Request\r\n\r\n"+
		"You requested a password reset for your account.\r\n\r\n"+
		"Use this token on the reset page:\r\n%s\r\n\r\n"+
		"The token expires in 24 hours. If you didn't request this, please ignore this email.\r\n",
		m.cfg.SMTPFrom, to, token)

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, m.cfg.SMTPFrom, []string{to}, []byte(body))
}
