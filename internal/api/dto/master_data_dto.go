package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateBranchRequest payload.
type CreateBranchRequest struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	ContactNumber string `json:"contact_number"`
	Location      string `json:"location"`
}

// BranchResponse public branch shape.
type BranchResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	ContactNumber string    `json:"contact_number"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorCategoryResponse public category shape.
type ErrorCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ErrorTypeResponse public type shape.
type ErrorTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// NewBranchResponse maps a branch.
func NewBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		ID:            b.ID,
		Name:          b.Name,
		Code:          b.Code,
		ContactNumber: b.ContactNumber,
		Location:      b.Location,
		CreatedAt:     b.CreatedAt,
	}
}
