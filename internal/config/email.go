package config

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer sends HTML email.
type Mailer interface {
	SendEmail(ctx context.Context, to []string, subject, html string) error
}

// ResendMailer delivers mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

func NewResendMailer(cfg *Config, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.Resend.APIKey),
		from:   cfg.Resend.From,
		logger: logger,
	}
}

func (m *ResendMailer) SendEmail(ctx context.Context, to []string, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sent, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info("email sent", zap.String("id", sent.Id), zap.Strings("to", to))
	return nil
}
