package domain

import "time"

// Role separates administrators from branch-level reporters.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleBranchUser Role = "BRANCH_USER"
)

// User is the domain model for anyone who can act on tickets.
type User struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	BranchID     *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
