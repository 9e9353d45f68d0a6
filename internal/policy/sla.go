package policy

import (
	"time"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// Resolution windows per priority. Canonical table for the product: urgent
// incidents get four hours, everything else widens from there.
var resolutionWindows = map[domain.TicketPriority]time.Duration{
	domain.TicketPriorityUrgent: 4 * time.Hour,
	domain.TicketPriorityHigh:   8 * time.Hour,
	domain.TicketPriorityMedium: 24 * time.Hour,
	domain.TicketPriorityLow:    48 * time.Hour,
}

// ResolutionWindow returns the fixed resolution window for a priority.
// Unknown priorities fall back to the LOW window.
func ResolutionWindow(priority domain.TicketPriority) time.Duration {
	if window, ok := resolutionWindows[priority]; ok {
		return window
	}
	return resolutionWindows[domain.TicketPriorityLow]
}

// Deadline computes the SLA deadline for a ticket created (or re-prioritized)
// at the given instant. Pure; no I/O.
func Deadline(priority domain.TicketPriority, createdAt time.Time) time.Time {
	return createdAt.Add(ResolutionWindow(priority))
}

// AtRiskThreshold is how close to the deadline a ticket may get before it is
// reported as at risk.
const AtRiskThreshold = 2 * time.Hour

// Status derives the service-level position of a ticket at the given instant.
// Resolved and closed tickets always report MET regardless of deadline.
func Status(ticketStatus domain.TicketStatus, deadline time.Time, now time.Time) domain.SLAState {
	if ticketStatus == domain.TicketStatusResolved || ticketStatus == domain.TicketStatusClosed {
		return domain.SLAMet
	}
	remaining := deadline.Sub(now)
	switch {
	case remaining < 0:
		return domain.SLABreached
	case remaining < AtRiskThreshold:
		return domain.SLAAtRisk
	default:
		return domain.SLAOnTrack
	}
}
