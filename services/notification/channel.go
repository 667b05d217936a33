package notification

import (
	"context"

	"medivault/models"
)

// Outcome classifies one delivery attempt. Transient failures may succeed if
// retried on a later tick; permanent failures mean the destination will never
// accept this message without re-registration.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeTransient
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTransient:
		return "transient"
	case OutcomePermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Message is a rendered, channel-agnostic reminder notification.
type Message struct {
	Title string
	Body  string
}

// Both channels implement the same delivery contract: classify every failure,
// never return an error. Classification happens at the channel boundary so a
// failing destination can never abort sibling dispatches.

// PushChannel delivers to a browser Web Push subscription.
type PushChannel interface {
	Send(ctx context.Context, sub models.PushSubscription, msg Message) Outcome
}

// EmailChannel delivers to an email address.
type EmailChannel interface {
	Send(ctx context.Context, address string, msg Message) Outcome
}
