package delivery

import (
	"context"
	"fmt"

	"gopkg.in/mail.v2"

	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/render"
)

// EmailAdapter delivers messages over SMTP. The endpoint address is the
// recipient email address. SMTP gives no reliable signal that an address is
// gone for good, so every failure is transient.
type EmailAdapter struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

// NewEmailAdapter creates an email adapter with the given SMTP credentials.
func NewEmailAdapter(smtpHost string, smtpPort int, username, password, from string) *EmailAdapter {
	return &EmailAdapter{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send mails the message to one address.
func (a *EmailAdapter) Send(ctx context.Context, ep model.DeliveryEndpoint, msg render.Message) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Err: err}
	}

	message := mail.NewMessage()

	message.SetHeader("From", a.from)
	message.SetHeader("To", ep.Address)
	message.SetHeader("Subject", msg.Title)

	message.SetBody("text/plain", msg.Body)

	dialer := mail.NewDialer(a.smtpHost, a.smtpPort, a.username, a.password)

	if err := dialer.DialAndSend(message); err != nil {
		return Outcome{Err: fmt.Errorf("send email: %w", err)}
	}

	return Outcome{OK: true}
}
