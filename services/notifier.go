package services

import (
	"context"
	"fmt"

	"github.com/lkwall/portfolio-site/models"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// Notifier delivers one contact-form submission to the site operator.
type Notifier interface {
	SendContactMessage(ctx context.Context, msg models.ContactMessage) error
}

// ResendNotifier sends contact email through the Resend API. In development
// mode it only logs the message, so the contact form stays usable without
// an API key.
type ResendNotifier struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
	isDev     bool
}

func NewResendNotifier(apiKey, fromEmail, toEmail string, isDev bool) *ResendNotifier {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}

	return &ResendNotifier{
		client:    client,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		isDev:     isDev,
	}
}

// SendContactMessage composes the fixed-format body and dispatches a single
// email addressed to the operator, with Reply-To set to the submitter so a
// response reaches them directly.
func (n *ResendNotifier) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	subject := "New Message"
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s",
		msg.Name, msg.Email, msg.Phone, msg.Message)

	if n.isDev {
		log.Info().
			Str("from", msg.Email).
			Str("subject", subject).
			Str("body", body).
			Msg("contact email (dev mode, not sent)")
		return nil
	}

	if n.client == nil {
		return fmt.Errorf("notifier not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    n.fromEmail,
		To:      []string{n.toEmail},
		ReplyTo: msg.Email,
		Subject: subject,
		Text:    body,
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	log.Info().Str("emailId", sent.Id).Msg("contact email sent")
	return nil
}
