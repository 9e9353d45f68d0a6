package billing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catalyst-itsm/intake-service/internal/events"
	"github.com/catalyst-itsm/intake-service/pkg/util"
)

// WebhookEvent is the parsed shape of an inbound billing notification. It is
// consumed once and never persisted.
type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Processor validates and dispatches inbound billing webhooks.
type Processor struct {
	secret     string
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProcessor creates a processor. An empty secret disables signature
// verification entirely; this is logged once here so the deployment posture
// is visible in the startup output.
func NewProcessor(secret string, dispatcher events.Dispatcher, logger *zap.Logger) *Processor {
	if secret == "" {
		logger.Warn("billing webhook secret not configured; signature verification disabled")
	}
	return &Processor{secret: secret, dispatcher: dispatcher, logger: logger}
}

// Process handles a raw webhook delivery. The signature is checked before the
// body is parsed or acted upon; a mismatch rejects the event outright.
// Unrecognized event types are accepted and ignored.
func (p *Processor) Process(ctx context.Context, rawBody []byte, signature string) error {
	if p.secret != "" && !VerifySignature(rawBody, signature, p.secret) {
		return util.NewSignatureInvalid()
	}

	var event WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return util.NewValidationError("malformed webhook payload", nil)
	}

	if strings.HasPrefix(event.Type, "subscription.") || strings.HasPrefix(event.Type, "invoice.") {
		p.logger.Info("billing webhook", zap.String("event_type", event.Type))
		if p.dispatcher != nil {
			_ = p.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventBillingEventReceived,
				Timestamp: time.Now(),
				Payload:   events.BillingEventReceivedPayload{EventType: event.Type},
			})
		}
	}
	return nil
}
