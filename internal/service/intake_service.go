package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/catalyst-itsm/intake-service/internal/domain"
	"github.com/catalyst-itsm/intake-service/internal/idempotency"
	apperrors "github.com/catalyst-itsm/intake-service/pkg/util"
)

// IntakeService guards ticket creation with the idempotency ledger. This is
// the only place the ledger and the ticket lifecycle are composed.
type IntakeService struct {
	ledger  idempotency.Ledger
	tickets *TicketService
}

// NewIntakeService constructs the service.
func NewIntakeService(ledger idempotency.Ledger, tickets *TicketService) *IntakeService {
	return &IntakeService{ledger: ledger, tickets: tickets}
}

// CreateTicket admits the request key and, on acceptance, creates the ticket.
// A missing key fails before the ledger is consulted. A live key rejects the
// request without repeating the mutation. Ledger unavailability surfaces as a
// retryable infrastructure error, never as acceptance.
func (s *IntakeService) CreateTicket(ctx context.Context, idempotencyKey string, draft TicketDraft) (*domain.Ticket, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return nil, apperrors.NewDomainError("MISSING_IDEMPOTENCY_KEY", "Idempotency-Key required", http.StatusBadRequest, nil)
	}

	if err := s.ledger.Admit(ctx, key); err != nil {
		if errors.Is(err, idempotency.ErrDuplicate) {
			return nil, apperrors.NewDuplicateRequest(key)
		}
		return nil, err
	}

	return s.tickets.Create(ctx, draft)
}
