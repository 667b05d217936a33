package notification

import (
	"context"

	"medivault/utils"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// SMTPChannel delivers email through an SMTP relay.
type SMTPChannel struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPChannel creates the SMTP-backed email channel.
func NewSMTPChannel(host string, port int, username, password, from string) *SMTPChannel {
	return &SMTPChannel{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message. Malformed recipients are permanent; relay and
// network errors are transient and retried on a later tick. gomail has no
// context support, so cancellation is checked before dialing.
func (c *SMTPChannel) Send(ctx context.Context, address string, msg Message) Outcome {
	logger := utils.GetLogger()

	if !validRecipient(address) {
		logger.Info("Skipping email to malformed address", zap.String("address", address))
		return OutcomePermanent
	}
	if ctx.Err() != nil {
		return OutcomeTransient
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", address)
	m.SetHeader("Subject", msg.Title)
	m.SetBody("text/plain", msg.Body)

	if err := c.dialer.DialAndSend(m); err != nil {
		logger.Warn("SMTP send failed", zap.Error(err))
		return OutcomeTransient
	}
	return OutcomeSuccess
}
