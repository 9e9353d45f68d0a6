package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catalyst-itsm/intake-service/internal/billing"
)

// SignatureHeader is the provider's HMAC signature header on webhook
// deliveries.
const SignatureHeader = "X-Square-Hmacsha256"

// WebhooksHandler receives billing-provider webhooks.
type WebhooksHandler struct {
	processor *billing.Processor
}

// NewWebhooksHandler constructs handler.
func NewWebhooksHandler(processor *billing.Processor) *WebhooksHandler {
	return &WebhooksHandler{processor: processor}
}

// HandleBillingWebhook POST /billing/webhooks. The signature is computed over
// the raw body bytes, so the payload must not be parsed before verification.
func (h *WebhooksHandler) HandleBillingWebhook(c *fiber.Ctx) error {
	if err := h.processor.Process(c.UserContext(), c.Body(), c.Get(SignatureHeader)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}
