// AngelaMos | 2026
// mailer.go

package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ozgesarac/ceyizdiz/internal/config"
)

// Mailer sends transactional mail. When disabled it logs instead of
// sending, so local development needs no SendGrid key.
type Mailer struct {
	client *sendgrid.Client
	cfg    config.MailConfig
}

func NewMailer(cfg config.MailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Enabled {
		m.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return m
}

func (m *Mailer) SendVerificationCode(toEmail, toName, code string) error {
	subject := "Ceyizdiz e-posta dogrulama kodu"
	plain := fmt.Sprintf(
		"Merhaba %s,\n\nDogrulama kodunuz: %s\n\nKod 24 saat gecerlidir.",
		toName, code,
	)
	return m.send(toEmail, toName, subject, plain)
}

func (m *Mailer) SendPasswordReset(toEmail, toName, token string) error {
	subject := "Ceyizdiz sifre sifirlama"
	plain := fmt.Sprintf(
		"Merhaba %s,\n\nSifrenizi sifirlamak icin: %s?token=%s\n\nBaglanti 1 saat gecerlidir.",
		toName, m.cfg.ResetURL, token,
	)
	return m.send(toEmail, toName, subject, plain)
}

func (m *Mailer) send(toEmail, toName, subject, plain string) error {
	if m.client == nil {
		slog.Info("mail sending disabled, skipping",
			"to", toEmail,
			"subject", subject,
		)
		return nil
	}

	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, "")

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send mail: status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
