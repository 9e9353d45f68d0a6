package domain

import "time"

// TicketType distinguishes incident reports from service requests.
type TicketType string

const (
	TicketTypeIncident       TicketType = "INCIDENT"
	TicketTypeServiceRequest TicketType = "SERVICE_REQUEST"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen            TicketStatus = "OPEN"
	TicketStatusInProgress      TicketStatus = "IN_PROGRESS"
	TicketStatusPendingApproval TicketStatus = "PENDING_APPROVAL"
	TicketStatusAwaitingUser    TicketStatus = "AWAITING_USER"
	TicketStatusResolved        TicketStatus = "RESOLVED"
	TicketStatusClosed          TicketStatus = "CLOSED"
)

// KnownStatuses lists every operator-selectable status. Status changes pick
// from this fixed menu; there is no adjacency restriction beyond the
// resolved-timestamp stamping on entering RESOLVED.
var KnownStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusPendingApproval,
	TicketStatusAwaitingUser,
	TicketStatusResolved,
	TicketStatusClosed,
}

// IsKnownStatus reports whether status is part of the fixed menu.
func IsKnownStatus(status TicketStatus) bool {
	for _, candidate := range KnownStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// IsKnownPriority reports whether priority is one of the four levels.
func IsKnownPriority(priority TicketPriority) bool {
	switch priority {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// SLAState is the derived service-level position of a ticket. It is computed
// on demand and never stored.
type SLAState string

const (
	SLAOnTrack  SLAState = "ON_TRACK"
	SLAAtRisk   SLAState = "AT_RISK"
	SLABreached SLAState = "BREACHED"
	SLAMet      SLAState = "MET"
)

// Comment is an append-only entry on a ticket's conversation thread.
// Comments are never mutated or removed once added; private comments are
// filtered out on the read side for non-privileged viewers.
type Comment struct {
	AuthorID  string
	Text      string
	Private   bool
	CreatedAt time.Time
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID             string
	Type           TicketType
	Subject        string
	Description    string
	Category       string
	Priority       TicketPriority
	Status         TicketStatus
	RequesterID    string
	AssigneeID     *string
	AffectedAssets []string
	Comments       []Comment
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SLADeadline    time.Time
	ResolvedAt     *time.Time
}

// VisibleComments returns the comment thread filtered for the viewer.
// Privileged viewers see everything; requesters never see private notes.
func (t *Ticket) VisibleComments(privileged bool) []Comment {
	if privileged {
		return t.Comments
	}
	visible := make([]Comment, 0, len(t.Comments))
	for _, comment := range t.Comments {
		if comment.Private {
			continue
		}
		visible = append(visible, comment)
	}
	return visible
}
