package events

import (
	"time"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTenantProvisioned     EventType = "tenant_provisioned"
	EventBillingEventReceived  EventType = "billing_event_received"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Type        domain.TicketType     `json:"type"`
	Subject     string                `json:"subject"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	AssigneeID  *string               `json:"assignee_id,omitempty"`
	SLADeadline time.Time             `json:"sla_deadline"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
	AssigneeID  *string               `json:"assignee_id,omitempty"`
	SLADeadline time.Time             `json:"sla_deadline"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	AuthorID    string `json:"author_id"`
	Private     bool   `json:"private"`
	BodyPreview string `json:"body_preview"`
}

// TenantProvisionedPayload payload.
type TenantProvisionedPayload struct {
	Name           string `json:"name"`
	Plan           string `json:"plan"`
	SubscriptionID string `json:"subscription_id"`
}

// BillingEventReceivedPayload payload.
type BillingEventReceivedPayload struct {
	EventType string `json:"event_type"`
}
