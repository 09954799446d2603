package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateAssetRequest payload. Dates use YYYY-MM-DD.
type CreateAssetRequest struct {
	Code           string  `json:"code"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	DeviceType     string  `json:"device_type"`
	SerialNumber   string  `json:"serial_number"`
	PurchaseDate   *string `json:"purchase_date"`
	WarrantyExpiry *string `json:"warranty_expiry"`
	BranchID       string  `json:"branch_id"`
}

// AssetResponse is the public asset shape.
type AssetResponse struct {
	ID             string             `json:"id"`
	Code           string             `json:"code"`
	Brand          string             `json:"brand"`
	Model          string             `json:"model"`
	DeviceType     string             `json:"device_type"`
	SerialNumber   string             `json:"serial_number"`
	PurchaseDate   *time.Time         `json:"purchase_date"`
	WarrantyExpiry *time.Time         `json:"warranty_expiry"`
	Status         domain.AssetStatus `json:"status"`
	RepairCount    int                `json:"repair_count"`
	BranchID       string             `json:"branch_id"`
	CreatedAt      time.Time          `json:"created_at"`
}

// RepairRecordResponse is a single ledger entry.
type RepairRecordResponse struct {
	ID          string    `json:"id"`
	AssetID     string    `json:"asset_id"`
	TicketID    *string   `json:"ticket_id"`
	ActionTaken string    `json:"action_taken"`
	RepairDate  time.Time `json:"repair_date"`
	Cost        string    `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssetDetailResponse bundles an asset with its repair history.
type AssetDetailResponse struct {
	Asset   AssetResponse          `json:"asset"`
	Repairs []RepairRecordResponse `json:"repairs"`
}

// NewAssetResponse maps an asset.
func NewAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:             a.ID,
		Code:           a.Code,
		Brand:          a.Brand,
		Model:          a.Model,
		DeviceType:     a.DeviceType,
		SerialNumber:   a.SerialNumber,
		PurchaseDate:   a.PurchaseDate,
		WarrantyExpiry: a.WarrantyExpiry,
		Status:         a.Status,
		RepairCount:    a.RepairCount,
		BranchID:       a.BranchID,
		CreatedAt:      a.CreatedAt,
	}
}

// NewRepairRecordResponse maps a ledger entry. Cost is rendered with
// two decimal places.
func NewRepairRecordResponse(r *domain.RepairRecord) RepairRecordResponse {
	return RepairRecordResponse{
		ID:          r.ID,
		AssetID:     r.AssetID,
		TicketID:    r.TicketID,
		ActionTaken: r.ActionTaken,
		RepairDate:  r.RepairDate,
		Cost:        r.Cost.StringFixed(2),
		CreatedAt:   r.CreatedAt,
	}
}
