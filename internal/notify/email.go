package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailClient sends staff e-mail through SendGrid.
type EmailClient struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailClient(apiKey, fromEmail, fromName string) *EmailClient {
	return &EmailClient{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (c *EmailClient) Send(ctx context.Context, to, toName, subject, plainText string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
