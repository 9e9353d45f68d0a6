package policy

import (
	"strings"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// Routing targets. These are queue identifiers, not validated agent accounts;
// whether an assignee actually exists is a directory concern outside this
// policy.
const (
	EscalationQueue = "network-escalation"
	SeniorQueue     = "senior-agents"
	SupportQueue    = "support-agents"
	JuniorQueue     = "junior-agents"
)

var defaultQueues = map[domain.TicketPriority]string{
	domain.TicketPriorityHigh:   SeniorQueue,
	domain.TicketPriorityMedium: SupportQueue,
	domain.TicketPriorityLow:    JuniorQueue,
}

// Assign picks an assignee for a ticket. A requested assignee is honored
// verbatim. Network and VPN categories route to the escalation queue.
// Otherwise the priority maps to a default tier; priorities outside the tier
// table leave the ticket unassigned. Pure; recomputed on priority change
// exactly like the SLA deadline.
func Assign(category string, priority domain.TicketPriority, requested *string) *string {
	if requested != nil && strings.TrimSpace(*requested) != "" {
		assignee := strings.TrimSpace(*requested)
		return &assignee
	}
	lowered := strings.ToLower(category)
	if strings.Contains(lowered, "network") || strings.Contains(lowered, "vpn") {
		queue := EscalationQueue
		return &queue
	}
	if queue, ok := defaultQueues[priority]; ok {
		q := queue
		return &q
	}
	return nil
}
