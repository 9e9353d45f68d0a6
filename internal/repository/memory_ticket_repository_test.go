package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

func sampleTicket(id string, updatedAt time.Time) *domain.Ticket {
	return &domain.Ticket{
		ID:          id,
		Type:        domain.TicketTypeIncident,
		Subject:     "subject " + id,
		Priority:    domain.TicketPriorityMedium,
		Status:      domain.TicketStatusOpen,
		RequesterID: "user-1",
		CreatedAt:   updatedAt,
		UpdatedAt:   updatedAt,
		SLADeadline: updatedAt.Add(24 * time.Hour),
	}
}

func TestMemoryRepositoryCreateGetRoundTrip(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, sampleTicket("t-1", now)))

	got, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "subject t-1", got.Subject)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMemoryRepositoryGetReturnsCopy(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, sampleTicket("t-1", time.Now())))

	first, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	first.Subject = "mutated"

	second, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "subject t-1", second.Subject)
}

func TestMemoryRepositoryAppendCommentOwnsThread(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, sampleTicket("t-1", now)))

	require.NoError(t, repo.AppendComment(ctx, "t-1", domain.Comment{AuthorID: "user-1", Text: "hello", CreatedAt: now}))

	// an Update with a stale comment slice must not clobber the thread
	stale, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	stale.Comments = nil
	stale.Status = domain.TicketStatusInProgress
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, got.Status)
	assert.Len(t, got.Comments, 1)
}

func TestMemoryRepositoryListFilterAndOrder(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	base := time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)

	older := sampleTicket("t-1", base)
	newer := sampleTicket("t-2", base.Add(time.Hour))
	newer.Status = domain.TicketStatusResolved
	other := sampleTicket("t-3", base.Add(2*time.Hour))
	other.RequesterID = "user-2"
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	requester := "user-1"
	listed, err := repo.ListWithFilter(ctx, TicketFilter{RequesterID: &requester})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "t-2", listed[0].ID)
	assert.Equal(t, "t-1", listed[1].ID)

	resolved, err := repo.ListWithFilter(ctx, TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusResolved}})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "t-2", resolved[0].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
