package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-itsm/intake-service/internal/domain"
	"github.com/catalyst-itsm/intake-service/internal/events"
	"github.com/catalyst-itsm/intake-service/internal/policy"
	"github.com/catalyst-itsm/intake-service/internal/repository"
	apperrors "github.com/catalyst-itsm/intake-service/pkg/util"
)

type ticketFixture struct {
	service *TicketService
	repo    *repository.MemoryTicketRepository
	now     time.Time
	clock   *time.Time
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	now := time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)
	clock := now
	repo := repository.NewMemoryTicketRepository()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Dispatcher: events.NewInMemoryDispatcher(),
		Now:        func() time.Time { return clock },
	})
	return &ticketFixture{service: svc, repo: repo, now: now, clock: &clock}
}

func strPtr(s string) *string { return &s }

func TestCreateUrgentNetworkTicket(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.Create(context.Background(), TicketDraft{
		Type:        domain.TicketTypeIncident,
		Subject:     "VPN is not connecting",
		Category:    "Network > VPN",
		Priority:    domain.TicketPriorityUrgent,
		RequesterID: "user-3",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.NotNil(t, ticket.AssigneeID)
	assert.Equal(t, policy.EscalationQueue, *ticket.AssigneeID)
	assert.Equal(t, f.now.Add(4*time.Hour), ticket.SLADeadline)
	assert.Equal(t, f.now, ticket.CreatedAt)
	assert.Equal(t, f.now, ticket.UpdatedAt)
	assert.Empty(t, ticket.Comments)
}

func TestCreateRequiresSubjectAndRequester(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.Create(context.Background(), TicketDraft{RequesterID: "user-1"})
	assert.Error(t, err)

	_, err = f.service.Create(context.Background(), TicketDraft{Subject: "Printer jam"})
	assert.Error(t, err)
}

func TestCreateDefaultsPriorityToMedium(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.Create(context.Background(), TicketDraft{
		Subject:     "Email slow",
		Category:    "Software > Email",
		RequesterID: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, f.now.Add(24*time.Hour), ticket.SLADeadline)
}

func TestSetStatusStampsResolvedAt(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	*f.clock = f.now.Add(2 * time.Hour)
	resolved, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, domain.TicketStatusResolved)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, f.now.Add(2*time.Hour), *resolved.ResolvedAt)
	assert.Equal(t, f.now.Add(2*time.Hour), resolved.UpdatedAt)
}

func TestSetStatusResolvedThenClosedKeepsStamp(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	_, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	closed, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, domain.TicketStatusClosed)

	require.NoError(t, err)
	assert.NotNil(t, closed.ResolvedAt)
}

func TestReopenClearsResolvedAt(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	_, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	reopened, err := f.service.SetStatus(context.Background(), "user-1", ticket.ID, domain.TicketStatusOpen)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, reopened.Status)
	assert.Nil(t, reopened.ResolvedAt)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	_, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, domain.TicketStatus("ARCHIVED"))
	assert.Error(t, err)
}

func TestSetStatusAnyKnownStatusReachable(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	// the menu imposes no adjacency: walk an arbitrary path through every state
	path := []domain.TicketStatus{
		domain.TicketStatusClosed,
		domain.TicketStatusOpen,
		domain.TicketStatusAwaitingUser,
		domain.TicketStatusPendingApproval,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusOpen,
	}
	for _, status := range path {
		updated, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, status)
		require.NoError(t, err, status)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdatePriorityRecomputesDeadlineAndAssignee(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityMedium, "Hardware > Printer")
	require.NotNil(t, ticket.AssigneeID)
	require.Equal(t, policy.SupportQueue, *ticket.AssigneeID)

	*f.clock = f.now.Add(time.Hour)
	updated, err := f.service.UpdatePriority(context.Background(), "agent-1", ticket.ID, domain.TicketPriorityHigh, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityHigh, updated.Priority)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, policy.SeniorQueue, *updated.AssigneeID)
	// deadline stays anchored to creation time
	assert.Equal(t, ticket.CreatedAt.Add(8*time.Hour), updated.SLADeadline)
	assert.Equal(t, f.now.Add(time.Hour), updated.UpdatedAt)
}

func TestUpdatePriorityHonorsRequestedAssignee(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityMedium, "Hardware > Printer")

	updated, err := f.service.UpdatePriority(context.Background(), "agent-1", ticket.ID, domain.TicketPriorityHigh, strPtr("agent-9"))

	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, "agent-9", *updated.AssigneeID)
}

func TestAddCommentAppendsInOrder(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	_, err := f.service.AddComment(context.Background(), ticket.ID, "user-1", "still broken", false)
	require.NoError(t, err)
	*f.clock = f.now.Add(time.Minute)
	updated, err := f.service.AddComment(context.Background(), ticket.ID, "agent-1", "looking into it", true)
	require.NoError(t, err)

	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "still broken", updated.Comments[0].Text)
	assert.Equal(t, "looking into it", updated.Comments[1].Text)
	assert.True(t, updated.Comments[1].Private)
	assert.False(t, updated.Comments[0].CreatedAt.After(updated.Comments[1].CreatedAt))
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.service.AddComment(context.Background(), ticket.ID, "user-1", text, false)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_COMMENT_TEXT", domainErr.Code)
	}

	stored, err := f.service.Get(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)
}

func TestVisibleCommentsFiltersPrivateForRequester(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	_, err := f.service.AddComment(context.Background(), ticket.ID, "agent-1", "internal note", true)
	require.NoError(t, err)
	updated, err := f.service.AddComment(context.Background(), ticket.ID, "agent-1", "public reply", false)
	require.NoError(t, err)

	visible := updated.VisibleComments(false)
	require.Len(t, visible, 1)
	assert.Equal(t, "public reply", visible[0].Text)
	assert.Len(t, updated.VisibleComments(true), 2)
}

func TestSLAStatusReflectsClock(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityUrgent, "Network > VPN")

	assert.Equal(t, domain.SLAOnTrack, f.service.SLAStatus(ticket))

	*f.clock = f.now.Add(3 * time.Hour)
	assert.Equal(t, domain.SLAAtRisk, f.service.SLAStatus(ticket))

	*f.clock = f.now.Add(5 * time.Hour)
	assert.Equal(t, domain.SLABreached, f.service.SLAStatus(ticket))

	resolved, err := f.service.SetStatus(context.Background(), "agent-1", ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.SLAMet, f.service.SLAStatus(resolved))
}

func TestConcurrentCommentsOnSameTicket(t *testing.T) {
	f := newTicketFixture(t)
	ticket := mustCreate(t, f, domain.TicketPriorityLow, "Hardware > Printer")

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.AddComment(context.Background(), ticket.ID, "user-1", "ping", false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := f.service.Get(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Comments, writers)
}

func mustCreate(t *testing.T, f *ticketFixture, priority domain.TicketPriority, category string) *domain.Ticket {
	t.Helper()
	ticket, err := f.service.Create(context.Background(), TicketDraft{
		Type:        domain.TicketTypeIncident,
		Subject:     "test ticket",
		Category:    category,
		Priority:    priority,
		RequesterID: "user-1",
	})
	require.NoError(t, err)
	return ticket
}
