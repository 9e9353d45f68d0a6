package dto

import (
	"time"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Type           domain.TicketType     `json:"type"`
	Subject        string                `json:"subject"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	Priority       domain.TicketPriority `json:"priority"`
	RequesterID    string                `json:"requester_id"`
	AssigneeID     *string               `json:"assignee_id"`
	AffectedAssets []string              `json:"affected_assets"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status  domain.TicketStatus `json:"status"`
	ActorID string              `json:"actor_id"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority   domain.TicketPriority `json:"priority"`
	AssigneeID *string               `json:"assignee_id"`
	ActorID    string                `json:"actor_id"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	AuthorID string `json:"author_id"`
	Text     string `json:"text"`
	Private  bool   `json:"private"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	Private   bool      `json:"private"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketResponse provides full ticket info plus the derived SLA state.
type TicketResponse struct {
	ID             string                `json:"id"`
	Type           domain.TicketType     `json:"type"`
	Subject        string                `json:"subject"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	Priority       domain.TicketPriority `json:"priority"`
	Status         domain.TicketStatus   `json:"status"`
	RequesterID    string                `json:"requester_id"`
	AssigneeID     *string               `json:"assignee_id"`
	AffectedAssets []string              `json:"affected_assets"`
	Comments       []CommentResponse     `json:"comments"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	SLADeadline    time.Time             `json:"sla_deadline"`
	SLAStatus      domain.SLAState       `json:"sla_status"`
	ResolvedAt     *time.Time            `json:"resolved_at"`
}
