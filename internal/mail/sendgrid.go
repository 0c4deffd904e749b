// Package mail sends transactional mail through SendGrid.
package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers registration mail via the SendGrid API.
type SendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridSender creates a sender using the given API key and from address.
func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: "Portfolio",
	}
}

// SendRegistration sends the registration-confirmation mail.
func (s *SendGridSender) SendRegistration(ctx context.Context, email string) error {
	from := sgmail.NewEmail(s.fromName, s.from)
	to := sgmail.NewEmail("", email)
	body := fmt.Sprintf("%s, your account has been registered!", email)
	msg := sgmail.NewSingleEmail(from, "Registration successful", to, body, "<strong>"+body+"</strong>")

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}
