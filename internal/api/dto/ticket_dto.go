package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CategoryID  string                `json:"category_id"`
	TypeID      string                `json:"type_id"`
	Priority    domain.TicketPriority `json:"priority"`
	Description string                `json:"description"`
	AssetID     *string               `json:"asset_id"`
	Images      []string              `json:"images"`
}

// CloseTicketRequest payload. Cost travels as a string so the amount
// survives JSON without float rounding.
type CloseTicketRequest struct {
	Resolution   string `json:"resolution"`
	DisposeAsset bool   `json:"dispose_asset"`
	Cost         string `json:"cost"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketSummary response.
type TicketSummary struct {
	ID         string                `json:"id"`
	Code       string                `json:"code"`
	Subject    string                `json:"subject"`
	Status     domain.TicketStatus   `json:"status"`
	Priority   domain.TicketPriority `json:"priority"`
	BranchID   string                `json:"branch_id"`
	AssigneeID *string               `json:"assignee_id"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID          string                `json:"id"`
	Code        string                `json:"code"`
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	BranchID    string                `json:"branch_id"`
	CategoryID  string                `json:"category_id"`
	TypeID      string                `json:"type_id"`
	AssetID     *string               `json:"asset_id"`
	CreatorID   string                `json:"creator_id"`
	AssigneeID  *string               `json:"assignee_id"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	ResolvedAt  *time.Time            `json:"resolved_at"`
	ClosedAt    *time.Time            `json:"closed_at"`
	Images      []string              `json:"images"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse represents a ticket thread entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTicketSummary maps a ticket to its list representation.
func NewTicketSummary(t *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:         t.ID,
		Code:       t.Code,
		Subject:    t.Subject,
		Status:     t.Status,
		Priority:   t.Priority,
		BranchID:   t.BranchID,
		AssigneeID: t.AssigneeID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// NewTicketDetail maps a ticket plus its images to the detail shape.
func NewTicketDetail(t *domain.Ticket, images []string) TicketDetailResponse {
	if images == nil {
		images = []string{}
	}
	return TicketDetailResponse{
		ID:          t.ID,
		Code:        t.Code,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		BranchID:    t.BranchID,
		CategoryID:  t.CategoryID,
		TypeID:      t.TypeID,
		AssetID:     t.AssetID,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ResolvedAt:  t.ResolvedAt,
		ClosedAt:    t.ClosedAt,
		Images:      images,
	}
}

// NewCommentResponse maps a comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TicketID:  c.TicketID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
