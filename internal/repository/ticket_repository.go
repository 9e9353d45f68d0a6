package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	RequesterID *string
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence. Comments are append-only
// and written through AppendComment; Update never touches the comment thread.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	AppendComment(ctx context.Context, ticketID string, comment domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Count(ctx context.Context) (int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, type, subject, description, category, priority, status,
            requester_id, assignee_id, affected_assets, created_at, updated_at, sla_deadline, resolved_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Type,
		ticket.Subject,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.RequesterID,
		ticket.AssigneeID,
		ticket.AffectedAssets,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.SLADeadline,
		ticket.ResolvedAt,
	)
	return err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET priority=$1, status=$2, assignee_id=$3, updated_at=$4,
            sla_deadline=$5, resolved_at=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Priority,
		ticket.Status,
		ticket.AssigneeID,
		ticket.UpdatedAt,
		ticket.SLADeadline,
		ticket.ResolvedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) AppendComment(ctx context.Context, ticketID string, comment domain.Comment) error {
	const query = `
        INSERT INTO ticket_comments (ticket_id, author_id, body, is_private, created_at)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query,
		ticketID,
		comment.AuthorID,
		comment.Text,
		comment.Private,
		comment.CreatedAt,
	)
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, type, subject, description, category, priority, status,
               requester_id, assignee_id, affected_assets, created_at, updated_at, sla_deadline, resolved_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Type,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.RequesterID,
		&ticket.AssigneeID,
		&ticket.AffectedAssets,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.SLADeadline,
		&ticket.ResolvedAt,
	); err != nil {
		return nil, err
	}
	comments, err := r.listComments(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Comments = comments
	return &ticket, nil
}

func (r *ticketRepository) listComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT author_id, body, is_private, created_at
        FROM ticket_comments WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.AuthorID, &comment.Text, &comment.Private, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT id, type, subject, description, category, priority, status,
                    requester_id, assignee_id, affected_assets, created_at, updated_at, sla_deadline, resolved_at
             FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	return count, err
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Type,
			&ticket.Subject,
			&ticket.Description,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.RequesterID,
			&ticket.AssigneeID,
			&ticket.AffectedAssets,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.SLADeadline,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
