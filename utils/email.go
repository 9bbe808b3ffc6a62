// utils/email.go
package utils

import (
	"fmt"
	"html"
	"strings"

	"go-storefront/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Supported EMAIL_PROVIDER values
const (
	ProviderPostmark = "postmark"
	ProviderSendGrid = "sendgrid"
)

type emailSender interface {
	send(from, to, subject, htmlBody, textBody string) error
}

type postmarkSender struct {
	client *postmark.Client
}

func (p postmarkSender) send(from, to, subject, htmlBody, textBody string) error {
	_, err := p.client.SendEmail(postmark.Email{
		From:     from,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	return err
}

type sendGridSender struct {
	client *sendgrid.Client
}

func (s sendGridSender) send(from, to, subject, htmlBody, textBody string) error {
	message := mail.NewSingleEmail(mail.NewEmail("", from), subject, mail.NewEmail("", to), textBody, htmlBody)
	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// EmailService sends transactional mail through the configured provider.
// Without a provider every message is only logged.
type EmailService struct {
	from   string
	sender emailSender
	logger *zap.Logger
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(cfg Config, logger *zap.Logger) (*EmailService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	es := &EmailService{from: cfg.EmailSender, logger: logger}

	switch cfg.EmailProvider {
	case "":
		return es, nil
	case ProviderPostmark:
		if cfg.PostmarkAPIToken == "" {
			return nil, fmt.Errorf("POSTMARK_API_TOKEN is not set in environment variables")
		}
		es.sender = postmarkSender{client: postmark.NewClient(cfg.PostmarkAPIToken, "")}
	case ProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
		}
		es.sender = sendGridSender{client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}

	if es.from == "" {
		return nil, fmt.Errorf("EMAIL_SENDER is not set in environment variables")
	}
	return es, nil
}

// Enabled reports whether messages actually leave the process
func (es *EmailService) Enabled() bool {
	return es.sender != nil
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent, textContent string) error {
	if es.sender == nil {
		es.logger.Debug("email provider not configured, skipping", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	if err := es.sender.send(es.from, toEmail, subject, htmlContent, textContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	es.logger.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation email to the customer
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := fmt.Sprintf("Order Confirmation %s", order.ID)
	delivery := order.EstimatedDelivery.Format("Monday, January 2, 2006")

	var rows, lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<li>%s &times; %d: $%s</li>", html.EscapeString(item.ProductName), item.Quantity, item.Subtotal().StringFixed(2))
		fmt.Fprintf(&lines, "- %s x %d: $%s\n", item.ProductName, item.Quantity, item.Subtotal().StringFixed(2))
	}

	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully and is estimated to arrive by <strong>%s</strong>.<br><ul>%s</ul>Total Amount: <strong>$%s</strong><br><br>Thank you for shopping with us!",
		html.EscapeString(order.ShippingAddress.Name),
		order.ID,
		delivery,
		rows.String(),
		order.TotalAmount.StringFixed(2),
	)
	textContent := fmt.Sprintf(
		"Dear %s,\n\nThank you for your purchase! Your order (ID: %s) has been placed successfully and is estimated to arrive by %s.\n\n%s\nTotal Amount: $%s\n",
		order.ShippingAddress.Name,
		order.ID,
		delivery,
		lines.String(),
		order.TotalAmount.StringFixed(2),
	)

	return es.SendEmail(toEmail, subject, htmlContent, textContent)
}
