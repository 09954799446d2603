package events

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketStarted   EventType = "ticket_started"
	EventTicketResolved  EventType = "ticket_resolved"
	EventTicketCancelled EventType = "ticket_cancelled"
	EventCommentAdded    EventType = "comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries what admins need to see for a fresh ticket.
type TicketCreatedPayload struct {
	TicketCode  string                `json:"ticket_code"`
	Subject     string                `json:"subject"`
	Priority    domain.TicketPriority `json:"priority"`
	BranchID    string                `json:"branch_id"`
	CreatorID   string                `json:"creator_id"`
	CreatorName string                `json:"creator_name"`
}

// TicketStartedPayload is addressed to the ticket creator.
type TicketStartedPayload struct {
	TicketCode string `json:"ticket_code"`
	CreatorID  string `json:"creator_id"`
	AdminID    string `json:"admin_id"`
	AdminName  string `json:"admin_name"`
}

// TicketResolvedPayload is addressed to the ticket creator.
type TicketResolvedPayload struct {
	TicketCode string `json:"ticket_code"`
	CreatorID  string `json:"creator_id"`
	Resolution string `json:"resolution,omitempty"`
}

// TicketCancelledPayload informs the assigned admin, when there is one.
type TicketCancelledPayload struct {
	TicketCode string  `json:"ticket_code"`
	CreatorID  string  `json:"creator_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// CommentAddedPayload carries everything the reply router needs to pick a
// counter-party without re-reading the ticket.
type CommentAddedPayload struct {
	TicketCode string  `json:"ticket_code"`
	SenderID   string  `json:"sender_id"`
	SenderName string  `json:"sender_name"`
	CreatorID  string  `json:"creator_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
	Text       string  `json:"text"`
}
