package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// MemoryTicketRepository keeps tickets in a process-local map. Used by tests
// and by deployments running without a POSTGRES_DSN.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewMemoryTicketRepository builds an empty store.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (r *MemoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r *MemoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	updated := cloneTicket(*ticket)
	// the comment thread is owned by AppendComment
	updated.Comments = stored.Comments
	r.tickets[ticket.ID] = updated
	return nil
}

func (r *MemoryTicketRepository) AppendComment(_ context.Context, ticketID string, comment domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Comments = append(stored.Comments, comment)
	r.tickets[ticketID] = stored
	return nil
}

func (r *MemoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket := cloneTicket(stored)
	return &ticket, nil
}

func (r *MemoryTicketRepository) ListWithFilter(_ context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Ticket
	for _, stored := range r.tickets {
		if filter.RequesterID != nil && stored.RequesterID != *filter.RequesterID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, stored.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, stored.Priority) {
			continue
		}
		result = append(result, cloneTicket(stored))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return []domain.Ticket{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (r *MemoryTicketRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets), nil
}

func cloneTicket(ticket domain.Ticket) domain.Ticket {
	clone := ticket
	clone.Comments = append([]domain.Comment(nil), ticket.Comments...)
	clone.AffectedAssets = append([]string(nil), ticket.AffectedAssets...)
	if ticket.AssigneeID != nil {
		assignee := *ticket.AssigneeID
		clone.AssigneeID = &assignee
	}
	if ticket.ResolvedAt != nil {
		resolved := *ticket.ResolvedAt
		clone.ResolvedAt = &resolved
	}
	return clone
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

func containsPriority(priorities []domain.TicketPriority, priority domain.TicketPriority) bool {
	for _, candidate := range priorities {
		if candidate == priority {
			return true
		}
	}
	return false
}
