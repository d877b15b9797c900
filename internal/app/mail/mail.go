// Package mail delivers passwordless login codes.
package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrot/internal/pkg/logx"
)

const (
	senderName   = "Carrot Market"
	loginSubject = "Your Carrot Market verification code"
)

// Mailer sends a login code to an email address.
type Mailer interface {
	SendLoginCode(ctx context.Context, to, code string) error
}

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(senderName, from),
	}
}

func (m *SendGridMailer) SendLoginCode(ctx context.Context, to, code string) error {
	message := sgmail.NewSingleEmail(
		m.from,
		loginSubject,
		sgmail.NewEmail("", to),
		fmt.Sprintf("Your login token is %s.", code),
		fmt.Sprintf("<strong>Your login token is %s.</strong>", code),
	)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}

	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: unexpected status %d: %s", response.StatusCode, response.Body)
	}

	logx.Info("Login code mailed", "status_code", response.StatusCode)
	return nil
}

// LogMailer writes codes to the log instead of sending them. Development only.
type LogMailer struct{}

func (LogMailer) SendLoginCode(_ context.Context, to, code string) error {
	logx.Info("Login code (not sent, development mailer)", "to", to, "code", code)
	return nil
}
