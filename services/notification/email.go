package notification

import (
	"fmt"
	"net/mail"

	"medivault/config"
)

// Exactly one email backend is active per deployment; both implement the
// EmailChannel contract and the choice is made once at construction.

// NewEmailChannel builds the configured email backend.
func NewEmailChannel(cfg config.Config) (EmailChannel, error) {
	switch cfg.EmailProvider {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("email: sendgrid selected but SENDGRID_API_KEY is empty")
		}
		return NewSendGridChannel(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName), nil
	case "smtp":
		return NewSMTPChannel(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom), nil
	default:
		return nil, fmt.Errorf("email: unknown provider %q", cfg.EmailProvider)
	}
}

// validRecipient reports whether the address parses as an email address.
// Checked before any send attempt so a malformed address fails fast as
// permanent instead of burning a provider call.
func validRecipient(address string) bool {
	if address == "" {
		return false
	}
	_, err := mail.ParseAddress(address)
	return err == nil
}
