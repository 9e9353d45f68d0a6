package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

func TestDeadlineWindows(t *testing.T) {
	cases := []struct {
		priority domain.TicketPriority
		window   time.Duration
	}{
		{domain.TicketPriorityUrgent, 4 * time.Hour},
		{domain.TicketPriorityHigh, 8 * time.Hour},
		{domain.TicketPriorityMedium, 24 * time.Hour},
		{domain.TicketPriorityLow, 48 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(string(tc.priority), func(t *testing.T) {
			createdAt := time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)
			assert.Equal(t, createdAt.Add(tc.window), Deadline(tc.priority, createdAt))
		})
	}
}

func TestDeadlineIndependentOfCreationTime(t *testing.T) {
	times := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 8, 23, 59, 59, 0, time.UTC),
		time.Now(),
	}
	for _, createdAt := range times {
		assert.Equal(t, 4*time.Hour, Deadline(domain.TicketPriorityUrgent, createdAt).Sub(createdAt))
	}
}

func TestDeadlineUnknownPriorityFallsBackToLow(t *testing.T) {
	createdAt := time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, createdAt.Add(48*time.Hour), Deadline(domain.TicketPriority("WHENEVER"), createdAt))
}

func TestStatusMetForResolvedAndClosed(t *testing.T) {
	now := time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)
	breachedDeadline := now.Add(-10 * time.Hour)

	assert.Equal(t, domain.SLAMet, Status(domain.TicketStatusResolved, breachedDeadline, now))
	assert.Equal(t, domain.SLAMet, Status(domain.TicketStatusClosed, breachedDeadline, now))
}

func TestStatusThresholds(t *testing.T) {
	now := time.Date(2025, 8, 8, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.SLABreached, Status(domain.TicketStatusOpen, now.Add(-time.Minute), now))
	assert.Equal(t, domain.SLAAtRisk, Status(domain.TicketStatusOpen, now.Add(90*time.Minute), now))
	assert.Equal(t, domain.SLAOnTrack, Status(domain.TicketStatusInProgress, now.Add(3*time.Hour), now))
}
