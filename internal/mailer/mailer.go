package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// Mailer delivers credential and OTP mail through SendGrid. Without an API
// key it degrades to a logged no-op so local setups keep working.
type Mailer struct {
	apiKey string
	from   string
	log    *logrus.Logger
}

func New(apiKey, from string, log *logrus.Logger) *Mailer {
	return &Mailer{apiKey: apiKey, from: from, log: log}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.apiKey == "" {
		m.log.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Warn("mail not configured, skipping send")
		return nil
	}
	message := mail.NewSingleEmail(
		mail.NewEmail("Warranty Desk", m.from),
		subject,
		mail.NewEmail("", to),
		body,
		body,
	)
	resp, err := sendgrid.NewSendClient(m.apiKey).Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
