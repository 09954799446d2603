package domain

import "time"

// Comment is an append-only reply in a ticket thread.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}
