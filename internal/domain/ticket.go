package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are permitted.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusClosed || s == TicketStatusCancelled
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is the aggregate for reported incidents.
type Ticket struct {
	ID          string
	Code        string
	Subject     string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CreatorID   string
	AssigneeID  *string
	BranchID    string
	CategoryID  string
	TypeID      string
	AssetID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
	ClosedAt    *time.Time
}

// TicketImage stores an opaque image payload attached at creation time.
type TicketImage struct {
	ID        string
	TicketID  string
	Data      string
	CreatedAt time.Time
}
