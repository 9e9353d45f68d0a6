package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catalyst-itsm/intake-service/internal/domain"
	"github.com/catalyst-itsm/intake-service/internal/events"
	"github.com/catalyst-itsm/intake-service/internal/policy"
	"github.com/catalyst-itsm/intake-service/internal/repository"
	apperrors "github.com/catalyst-itsm/intake-service/pkg/util"
)

// TicketService owns the ticket lifecycle: creation, status transitions,
// priority changes, and comment appends. All mutations on the same ticket
// serialize on a per-ticket lock.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	locks      *keyedLock
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// TicketDraft describes ticket creation payload.
type TicketDraft struct {
	Type              domain.TicketType
	Subject           string
	Description       string
	Category          string
	Priority          domain.TicketPriority
	RequesterID       string
	RequestedAssignee *string
	AffectedAssets    []string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	RequesterID *string
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		locks:      newKeyedLock(),
		now:        now,
	}
}

// Create assigns an id, opens the ticket, and derives its SLA deadline and
// initial assignee from the priority and category policies.
func (s *TicketService) Create(ctx context.Context, draft TicketDraft) (*domain.Ticket, error) {
	subject := strings.TrimSpace(draft.Subject)
	if subject == "" {
		return nil, apperrors.NewValidationError("subject required", nil)
	}
	if strings.TrimSpace(draft.RequesterID) == "" {
		return nil, apperrors.NewValidationError("requester_id required", nil)
	}
	if draft.Type == "" {
		draft.Type = domain.TicketTypeIncident
	}
	if draft.Priority == "" {
		draft.Priority = domain.TicketPriorityMedium
	}
	if !domain.IsKnownPriority(draft.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": draft.Priority})
	}
	if draft.AffectedAssets == nil {
		draft.AffectedAssets = []string{}
	}

	now := s.now()
	ticket := &domain.Ticket{
		ID:             uuid.NewString(),
		Type:           draft.Type,
		Subject:        subject,
		Description:    strings.TrimSpace(draft.Description),
		Category:       strings.TrimSpace(draft.Category),
		Priority:       draft.Priority,
		Status:         domain.TicketStatusOpen,
		RequesterID:    draft.RequesterID,
		AssigneeID:     policy.Assign(draft.Category, draft.Priority, draft.RequestedAssignee),
		AffectedAssets: draft.AffectedAssets,
		Comments:       []domain.Comment{},
		CreatedAt:      now,
		UpdatedAt:      now,
		SLADeadline:    policy.Deadline(draft.Priority, now),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInfrastructureError("ticket store unavailable", err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  ticket.RequesterID,
		Payload: events.TicketCreatedPayload{
			Type:        ticket.Type,
			Subject:     ticket.Subject,
			Category:    ticket.Category,
			Priority:    ticket.Priority,
			AssigneeID:  ticket.AssigneeID,
			SLADeadline: ticket.SLADeadline,
		},
	})
	return ticket, nil
}

// SetStatus moves the ticket to a new status. Every status on the fixed menu
// is reachable from every other; entering RESOLVED stamps the resolution
// timestamp, and reopening clears it.
func (s *TicketService) SetStatus(ctx context.Context, actorID, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.IsKnownStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	oldStatus := ticket.Status
	ticket.Status = newStatus
	ticket.UpdatedAt = now
	if newStatus == domain.TicketStatusResolved {
		ticket.ResolvedAt = &now
	} else if newStatus != domain.TicketStatusClosed {
		ticket.ResolvedAt = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// UpdatePriority changes the priority and recomputes both the SLA deadline
// and the assignee, exactly as at creation. The deadline stays anchored to
// the creation time so it is always createdAt plus the priority's window.
func (s *TicketService) UpdatePriority(ctx context.Context, actorID, ticketID string, newPriority domain.TicketPriority, requestedAssignee *string) (*domain.Ticket, error) {
	if !domain.IsKnownPriority(newPriority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": newPriority})
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	oldPriority := ticket.Priority
	ticket.Priority = newPriority
	ticket.SLADeadline = policy.Deadline(newPriority, ticket.CreatedAt)
	ticket.AssigneeID = policy.Assign(ticket.Category, newPriority, requestedAssignee)
	ticket.UpdatedAt = s.now()

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: newPriority,
			AssigneeID:  ticket.AssigneeID,
			SLADeadline: ticket.SLADeadline,
		},
	})
	return ticket, nil
}

// AddComment appends a comment to the ticket's thread. Blank text is a
// domain invariant violation and leaves the thread unchanged.
func (s *TicketService) AddComment(ctx context.Context, ticketID, authorID, text string, private bool) (*domain.Ticket, error) {
	body := strings.TrimSpace(text)
	if body == "" {
		return nil, apperrors.NewDomainError("EMPTY_COMMENT_TEXT", "comment text required", http.StatusUnprocessableEntity, nil)
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	comment := domain.Comment{
		AuthorID:  authorID,
		Text:      body,
		Private:   private,
		CreatedAt: now,
	}
	if err := s.tickets.AppendComment(ctx, ticket.ID, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Comments = append(ticket.Comments, comment)
	ticket.UpdatedAt = now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		ActorID:  authorID,
		Payload: events.TicketCommentAddedPayload{
			AuthorID:    authorID,
			Private:     private,
			BodyPreview: stringPreview(body, 120),
		},
	})
	return ticket, nil
}

// SLAStatus derives the current service-level position of a ticket.
func (s *TicketService) SLAStatus(ticket *domain.Ticket) domain.SLAState {
	return policy.Status(ticket.Status, ticket.SLADeadline, s.now())
}

// Get fetches a ticket by id.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns tickets matching the filter.
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		RequesterID: filter.RequesterID,
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
