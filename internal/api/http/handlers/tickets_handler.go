package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/catalyst-itsm/intake-service/internal/api/dto"
	"github.com/catalyst-itsm/intake-service/internal/domain"
	"github.com/catalyst-itsm/intake-service/internal/service"
	apperrors "github.com/catalyst-itsm/intake-service/pkg/util"
)

// IdempotencyKeyHeader carries the client-supplied request key on intake.
const IdempotencyKeyHeader = "Idempotency-Key"

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	intake  *service.IntakeService
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(intake *service.IntakeService, tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{intake: intake, tickets: tickets}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	draft := service.TicketDraft{
		Type:              req.Type,
		Subject:           req.Subject,
		Description:       req.Description,
		Category:          req.Category,
		Priority:          req.Priority,
		RequesterID:       req.RequesterID,
		RequestedAssignee: req.AssigneeID,
		AffectedAssets:    req.AffectedAssets,
	}
	ticket, err := h.intake.CreateTicket(c.UserContext(), c.Get(IdempotencyKeyHeader), draft)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": h.ticketResponse(ticket, true)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	tickets, err := h.tickets.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	privileged := c.Query("audience") != "requester"
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, h.ticketResponse(&tickets[i], privileged))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	privileged := c.Query("audience") != "requester"
	return c.JSON(fiber.Map{"data": h.ticketResponse(ticket, privileged)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.AuthorID) == "" {
		return apperrors.NewValidationError("author_id required", nil)
	}
	ticket, err := h.tickets.AddComment(c.UserContext(), c.Params("id"), req.AuthorID, req.Text, req.Private)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": h.ticketResponse(ticket, true)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.SetStatus(c.UserContext(), req.ActorID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketResponse(ticket, true)})
}

// UpdatePriority PATCH /tickets/:id/priority.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdatePriority(c.UserContext(), req.ActorID, c.Params("id"), req.Priority, req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketResponse(ticket, true)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if requester := c.Query("requester_id"); requester != "" {
		filter.RequesterID = &requester
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func (h *TicketsHandler) ticketResponse(ticket *domain.Ticket, privileged bool) dto.TicketResponse {
	comments := ticket.VisibleComments(privileged)
	commentItems := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentItems = append(commentItems, dto.CommentResponse{
			AuthorID:  comment.AuthorID,
			Text:      comment.Text,
			Private:   comment.Private,
			CreatedAt: comment.CreatedAt,
		})
	}
	return dto.TicketResponse{
		ID:             ticket.ID,
		Type:           ticket.Type,
		Subject:        ticket.Subject,
		Description:    ticket.Description,
		Category:       ticket.Category,
		Priority:       ticket.Priority,
		Status:         ticket.Status,
		RequesterID:    ticket.RequesterID,
		AssigneeID:     ticket.AssigneeID,
		AffectedAssets: ticket.AffectedAssets,
		Comments:       commentItems,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
		SLADeadline:    ticket.SLADeadline,
		SLAStatus:      h.tickets.SLAStatus(ticket),
		ResolvedAt:     ticket.ResolvedAt,
	}
}
