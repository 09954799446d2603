package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/util"
)

// Pusher delivers a real-time notification to a recipient's live channel.
// Delivery is best effort; a recipient without a live connection simply
// misses the push and reads the persisted row later.
type Pusher interface {
	Push(ctx context.Context, recipientID, title, message, category string) error
}

// NotificationService persists notifications and performs best-effort push
// delivery. Nothing in here ever returns an error to the triggering caller:
// every failure is logged and swallowed.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	pusher        Pusher
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	pusher Pusher,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		pusher:        pusher,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStarted, n.handleTicketStarted)
	n.dispatcher.Subscribe(events.EventTicketResolved, n.handleTicketResolved)
	n.dispatcher.Subscribe(events.EventTicketCancelled, n.handleTicketCancelled)
	n.dispatcher.Subscribe(events.EventCommentAdded, n.handleCommentAdded)
}

// Send persists a notification row for the recipient and attempts a push.
func (n *NotificationService) Send(ctx context.Context, recipientID, title, message string, category domain.NotificationCategory) {
	record := &domain.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Category:    category,
	}
	if err := n.notifications.Create(ctx, record); err != nil {
		n.logger.Error("failed to persist notification",
			zap.String("recipient_id", recipientID),
			zap.String("title", title),
			zap.Error(err))
		return
	}

	if n.pusher == nil {
		return
	}
	if err := n.pusher.Push(ctx, recipientID, title, message, string(category)); err != nil {
		n.logger.Warn("push delivery failed",
			zap.String("recipient_id", recipientID),
			zap.String("notification_id", record.ID),
			zap.Error(err))
	}
}

// SendToRole fans a notification out to every active user holding the role.
// An empty role resolution is a logged no-op.
func (n *NotificationService) SendToRole(ctx context.Context, role domain.Role, title, message string, category domain.NotificationCategory) {
	recipients, err := n.users.ListByRole(ctx, role)
	if err != nil {
		n.logger.Error("failed to resolve role recipients",
			zap.String("role", string(role)),
			zap.Error(err))
		return
	}
	if len(recipients) == 0 {
		n.logger.Warn("no recipients for role notification", zap.String("role", string(role)))
		return
	}
	for i := range recipients {
		n.Send(ctx, recipients[i].ID, title, message, category)
	}
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.SendToRole(ctx, domain.RoleAdmin,
		"New Ticket "+payload.TicketCode,
		payload.CreatorName+" reported: "+payload.Subject,
		domain.NotificationInfo)
	return nil
}

func (n *NotificationService) handleTicketStarted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStartedPayload)
	if !ok {
		return nil
	}
	n.Send(ctx, payload.CreatorID,
		"Ticket In Progress",
		payload.TicketCode+" is being handled by "+payload.AdminName,
		domain.NotificationInfo)
	return nil
}

func (n *NotificationService) handleTicketResolved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketResolvedPayload)
	if !ok {
		return nil
	}
	n.Send(ctx, payload.CreatorID,
		"Ticket Resolved",
		payload.TicketCode+" has been resolved",
		domain.NotificationSuccess)
	return nil
}

func (n *NotificationService) handleTicketCancelled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCancelledPayload)
	if !ok || payload.AssigneeID == nil {
		return nil
	}
	n.Send(ctx, *payload.AssigneeID,
		"Ticket Cancelled",
		payload.TicketCode+" was cancelled by its reporter",
		domain.NotificationWarning)
	return nil
}

// handleCommentAdded routes a reply to the counter-party: a creator's reply
// goes to the assigned admin (or all admins while unassigned), anyone else's
// reply goes to the creator.
func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		return nil
	}

	title := "New Reply on Ticket " + payload.TicketCode
	message := payload.SenderName + ": " + commentPreview(payload.Text)

	if payload.SenderID == payload.CreatorID {
		if payload.AssigneeID != nil {
			n.Send(ctx, *payload.AssigneeID, title, message, domain.NotificationInfo)
		} else {
			n.SendToRole(ctx, domain.RoleAdmin, title, message, domain.NotificationInfo)
		}
		return nil
	}
	n.Send(ctx, payload.CreatorID, title, message, domain.NotificationInfo)
	return nil
}

// Inbox returns a page of the recipient's notifications and the unread total.
func (n *NotificationService) Inbox(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int, error) {
	items, err := n.notifications.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, 0, util.ToDomainError(err)
	}
	unread, err := n.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, 0, util.ToDomainError(err)
	}
	return items, unread, nil
}

// MarkRead flags one of the recipient's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	if err := n.notifications.MarkRead(ctx, id, recipientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("notification", map[string]any{"id": id})
		}
		return util.ToDomainError(err)
	}
	return nil
}

// Delete removes one of the recipient's notifications.
func (n *NotificationService) Delete(ctx context.Context, id, recipientID string) error {
	if err := n.notifications.Delete(ctx, id, recipientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("notification", map[string]any{"id": id})
		}
		return util.ToDomainError(err)
	}
	return nil
}

// commentPreview truncates by characters, not bytes, so multi-byte replies
// keep valid UTF-8.
func commentPreview(text string) string {
	runes := []rune(text)
	if len(runes) > 50 {
		return string(runes[:47]) + "..."
	}
	return text
}
