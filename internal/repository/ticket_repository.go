package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// ErrStaleTicket reports that a conditional ticket write matched no row: the
// status changed under the caller, or the ticket is gone.
var ErrStaleTicket = errors.New("ticket status changed concurrently")

// TicketFilter captures listing parameters.
type TicketFilter struct {
	CreatorID     *string
	AssigneeID    *string
	BranchID      *string
	AssetID       *string
	Statuses      []domain.TicketStatus
	ExcludeStatus *domain.TicketStatus
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	// Create persists the ticket and its images in one transaction.
	Create(ctx context.Context, ticket *domain.Ticket, images []string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// ClaimOpen atomically moves an OPEN ticket to IN_PROGRESS and assigns
	// adminID. It reports false when the ticket was not OPEN anymore, which
	// callers must treat as a lost race (or a missing ticket).
	ClaimOpen(ctx context.Context, ticketID, adminID string) (bool, error)
	// UpdateStatus writes status and the resolution/closure stamps. The write
	// only lands while the row still holds expected; ErrStaleTicket reports a
	// concurrent writer got there first.
	UpdateStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus) error
	ListImages(ctx context.Context, ticketID string) ([]domain.TicketImage, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, code, subject, description, status, priority, creator_id, assignee_id,
               branch_id, category_id, type_id, asset_id, created_at, updated_at, resolved_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket, images []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO tickets (id, code, subject, description, status, priority, creator_id, branch_id, category_id, type_id, asset_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		ticket.ID,
		ticket.Code,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatorID,
		ticket.BranchID,
		ticket.CategoryID,
		ticket.TypeID,
		ticket.AssetID,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	for _, data := range images {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ticket_images (ticket_id, data) VALUES ($1,$2)`,
			ticket.ID, data,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.fetchSingle(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id)
}

func (r *ticketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	return r.fetchSingle(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE code=$1`, code)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatorID,
		&ticket.AssigneeID,
		&ticket.BranchID,
		&ticket.CategoryID,
		&ticket.TypeID,
		&ticket.AssetID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ResolvedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("creator_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
	if filter.AssetID != nil {
		args = append(args, *filter.AssetID)
		clauses = append(clauses, fmt.Sprintf("asset_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.ExcludeStatus != nil {
		args = append(args, *filter.ExcludeStatus)
		clauses = append(clauses, fmt.Sprintf("status <> $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ClaimOpen(ctx context.Context, ticketID, adminID string) (bool, error) {
	const query = `
        UPDATE tickets SET status=$1, assignee_id=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, query,
		domain.TicketStatusInProgress, adminID, ticketID, domain.TicketStatusOpen)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, ticket *domain.Ticket, expected domain.TicketStatus) error {
	const query = `
        UPDATE tickets SET status=$1, resolved_at=$2, closed_at=$3, updated_at=NOW()
        WHERE id=$4 AND status=$5`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.ResolvedAt,
		ticket.ClosedAt,
		ticket.ID,
		expected,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStaleTicket
	}
	return nil
}

func (r *ticketRepository) ListImages(ctx context.Context, ticketID string) ([]domain.TicketImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, ticket_id, data, created_at FROM ticket_images WHERE ticket_id=$1 ORDER BY created_at`,
		ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketImage
	for rows.Next() {
		var img domain.TicketImage
		if err := rows.Scan(&img.ID, &img.TicketID, &img.Data, &img.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, img)
	}
	return result, rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Code,
			&ticket.Subject,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.CreatorID,
			&ticket.AssigneeID,
			&ticket.BranchID,
			&ticket.CategoryID,
			&ticket.TypeID,
			&ticket.AssetID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ResolvedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
