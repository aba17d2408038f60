package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

// Mailer delivers a generated summary email to a single recipient.
type Mailer interface {
	Send(ctx context.Context, recipient string, email model.DailySummaryEmail) error
}

// SendGridMailer delivers mail through the SendGrid API.
type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridMailer creates a SendGrid-backed mailer.
func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

var _ Mailer = (*SendGridMailer)(nil)

func (m *SendGridMailer) Send(ctx context.Context, recipient string, email model.DailySummaryEmail) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail("", recipient)
	message := mail.NewSingleEmail(from, email.Subject, to, "", email.HTMLBody)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid send: %v", apperrors.ErrMailer, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid returned status %d", apperrors.ErrMailer, response.StatusCode)
	}

	logger.FromContext(ctx).Info("Summary email delivered",
		zap.String("recipient", recipient),
		zap.Int("sendgrid_status", response.StatusCode),
	)
	return nil
}

// ConsoleMailer logs email content instead of delivering it. Used in
// development when no SendGrid API key is configured.
type ConsoleMailer struct{}

// NewConsoleMailer creates a log-only mailer.
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

var _ Mailer = (*ConsoleMailer)(nil)

func (m *ConsoleMailer) Send(ctx context.Context, recipient string, email model.DailySummaryEmail) error {
	logger.FromContext(ctx).Info("Summary email (console mode, not delivered)",
		zap.String("recipient", recipient),
		zap.String("subject", email.Subject),
		zap.Int("body_bytes", len(email.HTMLBody)),
	)
	return nil
}

// NewMailer picks the SendGrid transport when an API key is configured and
// falls back to console mode otherwise.
func NewMailer(apiKey, fromEmail, fromName string, log *zap.Logger) Mailer {
	if apiKey == "" {
		log.Warn("No SendGrid API key configured, summary emails will be logged only")
		return NewConsoleMailer()
	}
	log.Info("SendGrid mailer initialized", zap.String("from", fromEmail))
	return NewSendGridMailer(apiKey, fromEmail, fromName)
}
