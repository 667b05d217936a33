package notification

import (
	"context"
	"encoding/json"
	"net/http"

	"medivault/models"
	"medivault/utils"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
)

// WebPushChannel sends browser push notifications via the Web Push protocol,
// authenticated with the server's VAPID key pair.
type WebPushChannel struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
	TTL        int
}

// NewWebPushChannel creates a push channel. TTL defaults to 24 hours.
func NewWebPushChannel(publicKey, privateKey, subscriber string) *WebPushChannel {
	return &WebPushChannel{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		Subscriber: subscriber,
		TTL:        60 * 60 * 24,
	}
}

// Send delivers one message to one subscription. Responses saying the
// destination no longer exists (gone, not found, forbidden) are permanent;
// everything else, network errors included, is transient.
func (c *WebPushChannel) Send(ctx context.Context, sub models.PushSubscription, msg Message) Outcome {
	logger := utils.GetLogger()

	payload, err := json.Marshal(map[string]string{
		"title": msg.Title,
		"body":  msg.Body,
	})
	if err != nil {
		logger.Error("Failed to marshal push payload", zap.Error(err))
		return OutcomeTransient
	}

	s := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, s, &webpush.Options{
		Subscriber:      c.Subscriber,
		VAPIDPublicKey:  c.PublicKey,
		VAPIDPrivateKey: c.PrivateKey,
		TTL:             c.TTL,
	})
	if err != nil {
		logger.Warn("Push send failed",
			zap.String("subscriptionId", sub.ID),
			zap.Error(err))
		return OutcomeTransient
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return OutcomeSuccess
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusGone,
		resp.StatusCode == http.StatusForbidden:
		logger.Info("Push subscription no longer valid",
			zap.String("subscriptionId", sub.ID),
			zap.Int("status", resp.StatusCode))
		return OutcomePermanent
	default:
		logger.Warn("Push service returned unexpected status",
			zap.String("subscriptionId", sub.ID),
			zap.Int("status", resp.StatusCode))
		return OutcomeTransient
	}
}
