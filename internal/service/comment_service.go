package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// CommentService appends replies to a ticket thread. The reply is persisted
// first; notifying the counter-party happens out-of-band and can never fail
// the reply itself.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, dispatcher: dispatcher}
}

// AddComment saves a reply and emits a routed notification event.
func (s *CommentService) AddComment(ctx context.Context, sender *domain.User, ticketID, text string) (*domain.Comment, error) {
	if sender == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: sender.ID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommentAdded,
			TicketID:  ticket.ID,
			ActorID:   sender.ID,
			Timestamp: time.Now(),
			Payload: events.CommentAddedPayload{
				TicketCode: ticket.Code,
				SenderID:   sender.ID,
				SenderName: sender.FullName,
				CreatorID:  ticket.CreatorID,
				AssigneeID: ticket.AssigneeID,
				Text:       text,
			},
		})
	}
	return comment, nil
}

// ListByTicket returns the thread in chronological order.
func (s *CommentService) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}
