package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus enumerates operational states for equipment.
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "ACTIVE"
	AssetStatusRepair   AssetStatus = "REPAIR"
	AssetStatusDisposed AssetStatus = "DISPOSED"
)

// Asset models a piece of equipment registered to a branch.
type Asset struct {
	ID             string
	Code           string
	Brand          string
	Model          string
	DeviceType     string
	SerialNumber   string
	PurchaseDate   *time.Time
	WarrantyExpiry *time.Time
	Status         AssetStatus
	RepairCount    int
	BranchID       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RepairRecord is an immutable ledger entry for remedial work on an asset.
type RepairRecord struct {
	ID          string
	AssetID     string
	TicketID    *string
	ActionTaken string
	RepairDate  time.Time
	Cost        decimal.Decimal
	CreatedAt   time.Time
}
