package notification

import (
	"context"

	"medivault/utils"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridChannel delivers email through the SendGrid HTTP API.
type SendGridChannel struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridChannel creates the SendGrid-backed email channel.
func NewSendGridChannel(apiKey, from, fromName string) *SendGridChannel {
	return &SendGridChannel{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

// Send delivers one message. Malformed recipients are permanent; API and
// network errors are transient and retried on a later tick.
func (c *SendGridChannel) Send(ctx context.Context, address string, msg Message) Outcome {
	logger := utils.GetLogger()

	if !validRecipient(address) {
		logger.Info("Skipping email to malformed address", zap.String("address", address))
		return OutcomePermanent
	}

	from := sgmail.NewEmail(c.fromName, c.from)
	to := sgmail.NewEmail("", address)
	email := sgmail.NewSingleEmail(from, msg.Title, to, msg.Body, "")

	resp, err := c.client.SendWithContext(ctx, email)
	if err != nil {
		logger.Warn("SendGrid send failed", zap.Error(err))
		return OutcomeTransient
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return OutcomeSuccess
	}
	logger.Warn("SendGrid returned non-2xx status",
		zap.Int("status", resp.StatusCode),
		zap.String("body", resp.Body))
	return OutcomeTransient
}
