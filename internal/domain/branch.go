package domain

import "time"

// Branch is a physical location users and assets belong to.
type Branch struct {
	ID            string
	Name          string
	Code          string
	ContactNumber string
	Location      string
	CreatedAt     time.Time
}
